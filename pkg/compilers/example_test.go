package compilers_test

import (
	"fmt"

	"github.com/matzehuels/artwork/pkg/compilers"
	"github.com/matzehuels/artwork/pkg/shape"
)

func ExampleRegistry() {
	reg := compilers.Registry()
	fmt.Println(reg.Names())

	dot, err := reg.Invoke("circle", shape.Props{"r": 10.0, "fill": "tomato"})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	_ = dot.Transform(shape.Transform{Scale: 2})
	w, h, _ := dot.Size()
	fmt.Println(w, h)

	// Configs always start from the props the circle was created with.
	_ = dot.Configure(shape.Config{"r": 5.0})
	w, h, _ = dot.Size()
	fmt.Println(w, h, dot.Props()["fill"])
	// Output:
	// [circle ellipse rect line polygon graph]
	// 40 40
	// 20 20 tomato
}
