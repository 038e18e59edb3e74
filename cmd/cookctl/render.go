package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"time"

	"github.com/letscook/cook-client/pkg/solana"
)

var (
	publicKeyType = reflect.TypeOf(ed25519.PublicKey(nil))
	timeType      = reflect.TypeOf(time.Time{})
)

// renderJSON prints keys as base58, raw bytes as hex and tagged variants with
// their type name.
func renderJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(jsonValue(reflect.ValueOf(v)), "", "  ")
}

func jsonValue(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}

	if v.Type() == publicKeyType {
		if v.Len() == 0 {
			return nil
		}
		return solana.PublicKeyString(v.Interface().(ed25519.PublicKey))
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).UTC().Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return jsonValue(v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		inner := jsonValue(v.Elem())
		if named, ok := v.Interface().(interface{ Name() string }); ok {
			fields, isStruct := inner.(map[string]interface{})
			if !isStruct {
				fields = map[string]interface{}{}
			}
			fields["type"] = named.Name()
			return fields
		}
		return inner
	case reflect.Struct:
		fields := make(map[string]interface{}, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			fields[field.Name] = jsonValue(v.Field(i))
		}
		return fields
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			for i := range b {
				b[i] = byte(v.Index(i).Uint())
			}
			return hex.EncodeToString(b)
		}
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []interface{}{}
		}
		items := make([]interface{}, v.Len())
		for i := range items {
			items[i] = jsonValue(v.Index(i))
		}
		return items
	}
	return v.Interface()
}
