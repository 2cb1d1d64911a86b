package inbox

import (
	"bytes"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ARC-4 return logs carry this prefix ahead of the encoded return value.
var abiReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// encodeMethodArgs builds the application args array: the method selector
// followed by the ABI encoding of each value argument. Transaction and
// reference arguments are not supported here; the only callers are the
// read-only simulation entry points, which take value arguments only.
func encodeMethodArgs(method abi.Method, args []interface{}) ([][]byte, error) {
	if len(args) != len(method.Args) {
		return nil, fmt.Errorf("%s takes %d args, got %d", method.Name, len(method.Args), len(args))
	}

	appArgs := [][]byte{method.GetSelector()}
	for i := range method.Args {
		typeObject, err := method.Args[i].GetTypeObject()
		if err != nil {
			return nil, fmt.Errorf("arg %d (%s): %w", i, method.Args[i].Type, err)
		}
		encoded, err := typeObject.Encode(args[i])
		if err != nil {
			return nil, fmt.Errorf("arg %d (%s): %w", i, method.Args[i].Type, err)
		}
		appArgs = append(appArgs, encoded)
	}
	return appArgs, nil
}

// decodeMethodReturn extracts and decodes the method's ABI return value from
// the simulated call's logs.
func decodeMethodReturn(method abi.Method, logs [][]byte) (interface{}, error) {
	if method.Returns.Type == "void" {
		return nil, nil
	}

	var payload []byte
	found := false
	for _, log := range logs {
		if bytes.HasPrefix(log, abiReturnPrefix) {
			payload = log[len(abiReturnPrefix):]
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: no return value in logs", method.Name)
	}

	typeObject, err := method.Returns.GetTypeObject()
	if err != nil {
		return nil, fmt.Errorf("%s return type: %w", method.Name, err)
	}
	value, err := typeObject.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%s return value: %w", method.Name, err)
	}
	return value, nil
}

// asUint64 normalizes the integer shapes the ABI decoder may produce.
func asUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %T", value)
	}
}

func asBool(value interface{}) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", value)
	}
	return b, nil
}

// addressFromReturn normalizes the decoded shape of an ABI address return,
// which differs across decoder versions.
func addressFromReturn(value interface{}) (types.Address, error) {
	var addr types.Address
	switch v := value.(type) {
	case types.Address:
		return v, nil
	case [32]byte:
		return types.Address(v), nil
	case []byte:
		if len(v) != len(addr) {
			return addr, fmt.Errorf("address return has %d bytes", len(v))
		}
		copy(addr[:], v)
		return addr, nil
	case []interface{}:
		if len(v) != len(addr) {
			return addr, fmt.Errorf("address return has %d elements", len(v))
		}
		for i, element := range v {
			b, err := asUint64(element)
			if err != nil || b > 0xff {
				return addr, fmt.Errorf("address element %d is not a byte", i)
			}
			addr[i] = byte(b)
		}
		return addr, nil
	case string:
		decoded, err := types.DecodeAddress(v)
		if err != nil {
			return addr, fmt.Errorf("address return: %w", err)
		}
		return decoded, nil
	default:
		return addr, fmt.Errorf("expected address, got %T", value)
	}
}
