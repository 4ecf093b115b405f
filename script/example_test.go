package script_test

import (
	"fmt"

	"github.com/jonathanfischer97/juliadoc-mcp/script"
)

func ExampleGetDoc() {
	s, err := script.GetDoc("Base.sort", script.DetailConcise, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.Code)
	// Output:
	// println("Type signature: ", first(methods(Base.sort)))
}

func ExampleListPackage() {
	s, _ := script.ListPackage("DataFrames", false)
	fmt.Println("package to load:", s.Package)
	// Output:
	// package to load: DataFrames
}

func ExampleValidatePath() {
	fmt.Println(script.ValidatePath("Base.sort!"))
	err := script.ValidatePath("Base.sort; run(`ls`)")
	fmt.Println(err != nil)
	// Output:
	// <nil>
	// true
}
