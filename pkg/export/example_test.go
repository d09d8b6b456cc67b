package export_test

import (
	"fmt"

	"github.com/matzehuels/artwork/pkg/export"
)

func ExampleEncode() {
	buf := []byte("hi")

	fmt.Println(export.Encode("text/plain", buf, export.String).Text)
	fmt.Println(export.Encode("text/plain", buf, export.Base64).Text)
	fmt.Println(export.Encode("text/plain", buf, export.DataURI).Text)
	fmt.Println(len(export.Encode("text/plain", buf, export.ArrayBuffer).Data))
	// Output:
	// hi
	// aGk=
	// data:text/plain;base64,aGk=
	// 2
}

func ExampleParseFormat() {
	for _, s := range []string{"image/svg+xml", "JPG", "application/pdf"} {
		f, _ := export.ParseFormat(s)
		fmt.Println(f, f.Ext(), f.MIME())
	}

	_, err := export.ParseFormat("gif")
	fmt.Println(err)
	// Output:
	// svg svg image/svg+xml
	// jpeg jpg image/jpeg
	// pdf pdf application/pdf
	// UNSUPPORTED_FORMAT: unsupported export type "gif"
}
