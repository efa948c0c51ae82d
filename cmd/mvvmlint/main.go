// Command mvvmlint is a linter that checks MVVM conventions.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/mvvmlint"
)

func main() {
	singlechecker.Main(mvvmlint.Analyzer)
}
