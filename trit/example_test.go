package trit_test

import (
	"fmt"

	"github.com/ternholo/engram/trit"
)

// ExampleBind demonstrates the element-wise ternary product: position 0
// agrees in sign and lands on P; position 1 disagrees and lands on N;
// positions 2 and 3 are Z in both operands and stay Z.
func ExampleBind() {
	a, _ := trit.NewSparse(4, []int32{0, 1}, nil)
	b, _ := trit.NewSparse(4, []int32{0}, []int32{1})

	out, _ := trit.Bind(a, b)
	sparse := out.ToSparse()
	fmt.Println("pos:", sparse.Pos, "neg:", sparse.Neg)
	// Output:
	// pos: [0] neg: [1]
}

// ExampleBundle demonstrates the saturating superposition: a shared
// position keeps its sign, a conflicting position cancels to Z.
func ExampleBundle() {
	a, _ := trit.NewSparse(4, []int32{0, 1}, nil)
	b, _ := trit.NewSparse(4, []int32{0}, []int32{1})

	out, _ := trit.Bundle(a, b)
	sparse := out.ToSparse()
	fmt.Println("pos:", sparse.Pos, "neg:", sparse.Neg)
	// Output:
	// pos: [0] neg: []
}

// ExampleCosine demonstrates that an identical vector has cosine 1 and
// a disjoint one has cosine 0.
func ExampleCosine() {
	a, _ := trit.NewSparse(100, []int32{1, 2, 3}, nil)
	disjoint, _ := trit.NewSparse(100, []int32{50, 51, 52}, nil)

	self, _ := trit.Cosine(a, a)
	other, _ := trit.Cosine(a, disjoint)
	fmt.Printf("self=%.2f other=%.2f\n", self, other)
	// Output:
	// self=1.00 other=0.00
}
