package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Valid(t *testing.T) {
	assert.False(t, Step(0).Valid())
	assert.True(t, Step(1).Valid())
	assert.True(t, Step(10).Valid())
	assert.False(t, Step(11).Valid())
}

func TestStep_KeyAndSlugRoundTrip(t *testing.T) {
	for s := Step(1); s <= TotalSteps; s++ {
		key := s.Key()
		back, ok := StepForKey(key)
		require.True(t, ok, "key %s", key)
		assert.Equal(t, s, back)
		assert.NotEmpty(t, s.Slug())
	}
}

func TestStepForKey_Unknown(t *testing.T) {
	_, ok := StepForKey(StepKey("nope"))
	assert.False(t, ok)
}

func TestDecodePayload_ConcreteTypes(t *testing.T) {
	raw := []byte(`{"fullName":"João Silva","cpf":"123.456.789-09"}`)
	p, err := DecodePayload(KeyPersonal, raw)
	require.NoError(t, err)

	personal, ok := p.(PersonalData)
	require.True(t, ok)
	assert.Equal(t, "João Silva", personal.FullName)
	assert.Equal(t, "123.456.789-09", personal.CPF)
}

func TestDecodePayload_EveryKey(t *testing.T) {
	for s := Step(1); s <= TotalSteps; s++ {
		key := s.Key()
		p, err := DecodePayload(key, []byte(`{}`))
		require.NoError(t, err, "key %s", key)
		assert.Equal(t, key, p.Key())
	}
}

func TestDecodePayload_UnknownKey(t *testing.T) {
	_, err := DecodePayload(StepKey("bogus"), []byte(`{}`))
	assert.Error(t, err)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := TransportData{
		NeedsTransport: true,
		Lines: []TransportLineRecord{
			{ID: "l1", LineName: "8000-10", Company: "SPTrans", FareAmount: "5.00", TripsPerDay: 2},
		},
	}

	data, err := EncodePayload(in)
	require.NoError(t, err)

	out, err := DecodePayload(KeyTransport, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDocumentStatus_IsValid(t *testing.T) {
	assert.True(t, DocumentPending.IsValid())
	assert.True(t, DocumentRejected.IsValid())
	assert.False(t, DocumentStatus("lost").IsValid())
}
