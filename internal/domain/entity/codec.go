package entity

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// EmptyPayload returns the zero payload for the given key.
func EmptyPayload(key StepKey) (StepPayload, error) {
	switch key {
	case KeyPersonal:
		return PersonalData{}, nil
	case KeyDependents:
		return DependentsData{}, nil
	case KeyAddress:
		return AddressData{}, nil
	case KeyContract:
		return ContractData{}, nil
	case KeyDisability:
		return DisabilityData{}, nil
	case KeyTransport:
		return TransportData{}, nil
	case KeyForeigner:
		return ForeignerData{}, nil
	case KeyApprentice:
		return ApprenticeData{}, nil
	case KeyBank:
		return BankData{}, nil
	case KeyDocuments:
		return DocumentsData{}, nil
	}
	return nil, fmt.Errorf("entity: unknown step key %q", key)
}

// DecodePayload unmarshals raw JSON into the concrete payload type for key.
// Unknown JSON fields are ignored; an unknown key is an error.
func DecodePayload(key StepKey, raw []byte) (StepPayload, error) {
	switch key {
	case KeyPersonal:
		return decodeInto[PersonalData](raw, key)
	case KeyDependents:
		return decodeInto[DependentsData](raw, key)
	case KeyAddress:
		return decodeInto[AddressData](raw, key)
	case KeyContract:
		return decodeInto[ContractData](raw, key)
	case KeyDisability:
		return decodeInto[DisabilityData](raw, key)
	case KeyTransport:
		return decodeInto[TransportData](raw, key)
	case KeyForeigner:
		return decodeInto[ForeignerData](raw, key)
	case KeyApprentice:
		return decodeInto[ApprenticeData](raw, key)
	case KeyBank:
		return decodeInto[BankData](raw, key)
	case KeyDocuments:
		return decodeInto[DocumentsData](raw, key)
	}
	return nil, fmt.Errorf("entity: unknown step key %q", key)
}

func decodeInto[T StepPayload](raw []byte, key StepKey) (StepPayload, error) {
	var dst T
	if err := json.Unmarshal(raw, &dst); err != nil {
		return nil, fmt.Errorf("entity: decode %s payload: %w", key, err)
	}
	return dst, nil
}

// EncodePayload marshals a payload to JSON.
func EncodePayload(p StepPayload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("entity: encode %s payload: %w", p.Key(), err)
	}
	return data, nil
}
