package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iregaddr/braggi/pkg/config"
	"github.com/iregaddr/braggi/pkg/diagnostic"
)

func TestFile_StdlibAcceptsWellFormedFunctionHeader(t *testing.T) {
	res := File("t.bg", []byte("fn main ( ) { }"), config.Default())

	assert.False(t, res.Reporter.HasErrors(), "unexpected errors: %+v", res.Reporter.All())
}

func TestFile_StdlibRejectsMalformedFunctionHeader(t *testing.T) {
	res := File("t.bg", []byte("fn 123 ( ) { }"), config.Default())

	found := false
	for _, d := range res.Reporter.All() {
		if d.Category == diagnostic.Syntax {
			found = true
		}
	}

	assert.True(t, found, "expected a Syntax diagnostic for a malformed fn header, got %+v", res.Reporter.All())
}

func TestFile_NoStdlibSkipsHeaderValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Stdlib = false

	res := File("t.bg", []byte("fn 123 ( ) { }"), cfg)

	assert.False(t, res.Reporter.HasErrors(), "expected no errors with stdlib disabled, got: %+v", res.Reporter.All())
}
