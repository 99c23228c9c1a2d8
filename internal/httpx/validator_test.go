package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookInput struct {
	ISBN  string `json:"isbn" validate:"required,isbn"`
	Title string `json:"title" validate:"required,max=10"`
	Total int    `json:"total_copies" validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(bookInput{ISBN: "978-0-441-01359-3", Title: "Dune"}))
	assert.Empty(t, ValidateStruct(bookInput{ISBN: "044101359X", Title: "Dune"}))

	details := ValidateStruct(bookInput{ISBN: "123", Title: "", Total: -1})
	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "isbn must be a valid ISBN (10 or 13 digits)", fields["isbn"])
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "total_copies must be greater than or equal to 0", fields["total_copies"])
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780441013593", NormalizeISBN("978-0 441-01359-3"))
}
