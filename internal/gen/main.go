// Command gen regenerates pkg/region/compat_table.go from the periscope
// compatibility matrix in this file, via github.com/consensys/bavard —
// the same batch-template codegen the teacher repo uses for its field
// element types (field/internal/generator/main.go), here repurposed to
// stamp out a data table instead of arithmetic.
package main

import (
	"fmt"
	"os"

	"github.com/consensys/bavard"
)

const copyrightHolder = "braggi contributors"

// regime names the four lifetime disciplines from spec.md §3.
var regimeNames = []string{"FIFO", "FILO", "SEQ", "RAND"}

// entry is one row of the compatibility matrix from spec.md §4.6: for a
// given (from, to) regime pair, whether an IN-direction and an
// OUT-direction periscope is admissible.
type entry struct {
	From, To string
	In, Out  bool
}

// table is the literal 4x4 matrix from spec.md §4.6, transcribed row by
// row in the order the spec lists them.
var table = []entry{
	{"FIFO", "FIFO", true, true},
	{"FIFO", "FILO", true, false},
	{"FIFO", "SEQ", true, true},
	{"FIFO", "RAND", false, false},

	{"FILO", "FIFO", false, true},
	{"FILO", "FILO", true, true},
	{"FILO", "SEQ", false, true},
	{"FILO", "RAND", false, false},

	{"SEQ", "FIFO", true, false},
	{"SEQ", "FILO", true, false},
	{"SEQ", "SEQ", true, true},
	{"SEQ", "RAND", false, false},

	{"RAND", "FIFO", false, false},
	{"RAND", "FILO", false, false},
	{"RAND", "SEQ", false, false},
	{"RAND", "RAND", true, true},
}

type tableData struct {
	Regimes []string
	// Rows is table reshaped into [from][to] order, so the template can
	// emit it with two nested ranges and no arithmetic of its own.
	Rows [][]entry
}

//go:generate go run .
func main() {
	if len(table) != len(regimeNames)*len(regimeNames) {
		fmt.Fprintf(os.Stderr, "region compatibility table must have exactly %d entries, has %d\n", len(regimeNames)*len(regimeNames), len(table))
		os.Exit(1)
	}

	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "braggi")

	rows := make([][]entry, len(regimeNames))
	for i := range rows {
		rows[i] = table[i*len(regimeNames) : (i+1)*len(regimeNames)]
	}

	data := tableData{Regimes: regimeNames, Rows: rows}

	if err := bgen.Generate(data, "region", "templates",
		bavard.Entry{
			File:      "../../pkg/region/compat_table.go",
			Templates: []string{"compat_table.go.tmpl"},
		},
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
