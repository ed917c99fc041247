package event

import (
	"reflect"
	"strings"
)

// Fields plucks the named json fields out of a struct, for event payloads
// that should carry a subset rather than the whole entity.
func Fields(obj interface{}, names []string) map[string]interface{} {
	result := make(map[string]interface{})
	if obj == nil || len(names) == 0 {
		return result
	}

	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return result
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return result
	}
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag == "" {
			tag = strings.ToLower(field.Name)
		}
		for _, name := range names {
			if name == tag {
				result[tag] = val.Field(i).Interface()
				break
			}
		}
	}
	return result
}

// Changes diffs the named json fields between two versions of an entity,
// returning old/new pairs for everything that differs. Update handlers put
// this into the event context's Additional map.
func Changes(old, updated interface{}, names []string) map[string]interface{} {
	changes := make(map[string]interface{})
	if old == nil || updated == nil || len(names) == 0 {
		return changes
	}

	oldFields := Fields(old, names)
	newFields := Fields(updated, names)

	for name, newValue := range newFields {
		oldValue, ok := oldFields[name]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(oldValue, newValue) {
			changes[name] = map[string]interface{}{
				"old": oldValue,
				"new": newValue,
			}
		}
	}
	return changes
}
