package ticketcode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamhi-tic/helpdesk-service/internal/errs"
)

func TestEncode(t *testing.T) {
	created := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "SSTI-2025-0001-ST", Encode(1, created))
	assert.Equal(t, "SSTI-2025-0042-ST", Encode(42, created))
	assert.Equal(t, "SSTI-2025-9999-ST", Encode(9999, created))
}

func TestEncodeWidensPastFourDigits(t *testing.T) {
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SSTI-2026-10000-ST", Encode(10000, created))
	assert.Equal(t, "SSTI-2026-123456-ST", Encode(123456, created))
}

func TestEncodeDependsOnlyOnIDAndYear(t *testing.T) {
	a := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Encode(7, a), Encode(7, b))
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, id := range []uint64{1, 42, 9999, 10000, 8675309} {
		code := Encode(id, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
		got, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"SSTI",
		"SSTI-2025-abcd-ST",
		"SSTI-2025--ST",
		"SSTI-2025-0000-ST", // id 0 can never exist
		"not a code at all",
	}
	for _, c := range cases {
		_, err := Decode(c)
		assert.True(t, errors.Is(err, errs.ErrMalformedCode), "Decode(%q) should be malformed", c)
	}
}

func TestDecodeIgnoresPrefixAndYear(t *testing.T) {
	// Decode only parses the positional segment; exactness is enforced by
	// the caller re-encoding from the fetched row.
	id, err := Decode("XXXX-1999-0005-YY")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
}

func TestLooks(t *testing.T) {
	assert.True(t, Looks("SSTI-2025-0001-ST"))
	assert.True(t, Looks(" SSTI-2025-0001-ST "))
	assert.False(t, Looks("Ana Ruiz"))
	assert.False(t, Looks("Perez-Garcia")) // dashed surname, no numeric segment
}
