package features

import (
	"encoding/json"
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// ParseJSONOrYAML decodes data into target the way json.Unmarshal does. Data that is not valid
// JSON is read as YAML and re-encoded as JSON first, so that types with their own JSON decoding
// (such as opt.Maybe) behave the same in both formats.
//
// Decoding errors name the key path of the offending value where it is known.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if !json.Valid(data) {
		var document interface{}
		if err := yaml.Unmarshal(data, &document); err != nil {
			return err
		}
		converted, err := yamlToJSONValue(document, "")
		if err != nil {
			return err
		}
		if data, err = json.Marshal(converted); err != nil {
			return err
		}
	}
	return describeDecodeError(json.Unmarshal(data, target))
}

// yamlToJSONValue rewrites a decoded YAML document into values that encoding/json can marshal.
// The only thing that needs rewriting is maps with non-string key types, which JSON cannot
// represent; those are accepted if every key is in fact a string.
func yamlToJSONValue(value interface{}, path string) (interface{}, error) {
	switch value := value.(type) {
	case []interface{}:
		items := make([]interface{}, len(value))
		for i, item := range value {
			converted, err := yamlToJSONValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			items[i] = converted
		}
		return items, nil
	case map[string]interface{}:
		fields := make(map[string]interface{}, len(value))
		for key, field := range value {
			converted, err := yamlToJSONValue(field, childPath(path, key))
			if err != nil {
				return nil, err
			}
			fields[key] = converted
		}
		return fields, nil
	case map[interface{}]interface{}:
		fields := make(map[string]interface{}, len(value))
		for rawKey, field := range value {
			key, ok := rawKey.(string)
			if !ok {
				return nil, fmt.Errorf("%s: key %v is a %T; only string keys are allowed",
					pathOrRoot(path), rawKey, rawKey)
			}
			converted, err := yamlToJSONValue(field, childPath(path, key))
			if err != nil {
				return nil, err
			}
			fields[key] = converted
		}
		return fields, nil
	default:
		return value, nil
	}
}

func describeDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("%s: expected %s, found JSON %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return err
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "top level"
	}
	return path
}
