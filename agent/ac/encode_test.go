package ac

import (
	"testing"

	"github.com/lainio/err2/assert"
)

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"101 Wilson Lane", "68086943237164982734333428280784300550565381723532936263016368251445461241953"},
		{"87121", "87121"},
		{"SLC", "101327353979588246869873249766058188995681113722618593621043638294296500696424"},
		{"UT", "93856629670657830351991220989031130499313559332549427637940645777813964461231"},
		{"", "102987336249554097029535212322581322789799900648198034993379397001115665086549"},
		{"True", "27471875274925838976481193902417661171675582237244292940724984695988062543640"},
		{"2147483647", "2147483647"},
		{"2147483648", "26221484005389514539852548961319751347124425277437769688639924217837557266135"},
		{"-2147483648", "-2147483648"},
		{"-2147483649", "68956915425095939579909400566452872085353864667122112803508671228696852865689"},
		{"0.0", "62838607218564353630028473473939957328943626306458686867332534889076311281879"},
		{"175", "175"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			assert.Equal(EncodeValue(tt.raw), tt.expected)
		})
	}
}

func TestEncodeValues(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	values := EncodeValues(map[string]string{"name": "SLC", "age": "28"})
	assert.Equal(len(values), 2)
	assert.Equal(values["age"].Encoded, "28")
	assert.Equal(values["age"].Raw, "28")
	assert.Equal(values["name"].Encoded,
		"101327353979588246869873249766058188995681113722618593621043638294296500696424")
}
