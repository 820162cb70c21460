package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

func generateDerive(n int) string {
	var sb strings.Builder

	typeParams := []string{"T"}
	for i := 1; i <= n; i++ {
		typeParams = append(typeParams, fmt.Sprintf("D%d", i))
	}

	fnParams := []string{}
	deps := []string{}
	values := []string{}
	for i := 1; i <= n; i++ {
		fnParams = append(fnParams, fmt.Sprintf("D%d", i))
		deps = append(deps, fmt.Sprintf("d%d", i))
		values = append(values, fmt.Sprintf("v%d", i))
	}

	sb.WriteString(fmt.Sprintf("// Derive%d combines %d supplier value(s) with fn.\n", n, n))
	sb.WriteString(fmt.Sprintf("func Derive%d[%s any](\n", n, strings.Join(typeParams, ", ")))
	for i := 1; i <= n; i++ {
		sb.WriteString(fmt.Sprintf("\td%d Supplier[D%d],\n", i, i))
	}
	sb.WriteString(fmt.Sprintf("\tfn func(%s) (T, error),\n", strings.Join(fnParams, ", ")))
	sb.WriteString(") *Derived[T] {\n")
	sb.WriteString(fmt.Sprintf("\treturn newDerived[T]([]AnySupplier{%s}, func(values []any) (T, error) {\n", strings.Join(deps, ", ")))
	sb.WriteString("\t\tvar zero T\n")
	for i := 1; i <= n; i++ {
		sb.WriteString(fmt.Sprintf("\t\tv%d, err := SafeTypeAssertion[D%d](values[%d])\n", i, i, i-1))
		sb.WriteString("\t\tif err != nil {\n")
		sb.WriteString(fmt.Sprintf("\t\t\treturn zero, ParameterError(%d, err)\n", i-1))
		sb.WriteString("\t\t}\n")
	}
	sb.WriteString(fmt.Sprintf("\t\treturn fn(%s)\n", strings.Join(values, ", ")))
	sb.WriteString("\t})\n")
	sb.WriteString("}\n\n")

	return sb.String()
}

func main() {
	var output strings.Builder

	for i := 1; i <= 5; i++ {
		output.WriteString(generateDerive(i))
	}

	fmt.Print(output.String())

	if len(os.Args) > 1 && os.Args[1] == "-w" {
		var file bytes.Buffer
		file.WriteString("// Code generated by codegen/main.go. DO NOT EDIT.\n\n")
		file.WriteString("package supply\n\n")
		file.WriteString(strings.TrimRight(output.String(), "\n") + "\n")

		if err := os.WriteFile("derive_generated.go", file.Bytes(), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Generated derive_generated.go")
	}
}
