/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package preview

/*****************************************************************************************************************/

import (
	"bytes"
	"testing"

	"github.com/observerly/imfit/pkg/image"
)

/*****************************************************************************************************************/

func TestRenderProducesAPNGHeader(t *testing.T) {
	img, err := image.New(4, 4)
	if err != nil {
		t.Fatalf("image.New returned unexpected error: %v", err)
	}

	for i := 0; i < 16; i++ {
		img.Value[i] = float64(i)
	}

	var buf bytes.Buffer

	if err := Render(*img, &buf); err != nil {
		t.Fatalf("Render returned unexpected error: %v", err)
	}

	pngSignature := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
		t.Errorf("Render output does not start with the PNG signature")
	}
}

/*****************************************************************************************************************/

func TestRenderRejectsEmptyImage(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(image.Buffer{}, &buf); err == nil {
		t.Errorf("Render with an empty buffer expected error, got nil")
	}
}

/*****************************************************************************************************************/

func TestRenderToleratesConstantImage(t *testing.T) {
	img, err := image.New(2, 2)
	if err != nil {
		t.Fatalf("image.New returned unexpected error: %v", err)
	}

	var buf bytes.Buffer

	if err := Render(*img, &buf); err != nil {
		t.Fatalf("Render on a constant (all-zero) buffer returned unexpected error: %v", err)
	}

	if buf.Len() == 0 {
		t.Errorf("Render on a constant buffer produced no output")
	}
}

/*****************************************************************************************************************/
