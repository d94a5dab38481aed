// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package stakepool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"` // Note the enclosing double quotes for valid JSON string

	var unmarshaledValue Bytes32

	// using direct function
	err := unmarshaledValue.UnmarshalJSON([]byte(originalHex))
	assert.NoError(t, err)

	// using json overloading ( satisfies the json.Unmarshal interface )
	err = json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)

	// Marshal the value back to JSON
	directMarshallJson, err := unmarshaledValue.MarshalJSON()
	assert.NoError(t, err, "Marshaling should not produce an error")
	assert.Equal(t, originalHex, string(directMarshallJson))

	// as a struct field, the way API responses carry it
	wrapped := struct {
		Value Bytes32 `json:"value"`
	}{unmarshaledValue}
	marshalField, err := json.Marshal(&wrapped)
	assert.NoError(t, err)
	assert.Equal(t, `{"value":`+originalHex+`}`, string(marshalField))

	marshalPtr, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err, "Marshaling should not produce an error")
	assert.Equal(t, originalHex, string(marshalPtr))
}

func TestParseBytes32(t *testing.T) {
	b32, err := ParseBytes32("0x00000000000000000000000000000000000000000000000000006d6173746572")
	assert.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000006d6173746572", b32.String())

	_, err = ParseBytes32("0xzz000000000000000000000000000000000000000000000000006d6173746572")
	assert.Error(t, err)

	_, err = ParseBytes32("0x6d6173746572")
	assert.EqualError(t, err, "invalid length")

	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, b32.IsZero())
}
