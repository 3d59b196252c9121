// Copyright 2026 Qualcalc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envflag populates flag structs from environment variables such
// as QCALC_DEBUG=logsearch=1,strategy=alledges.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

type field struct {
	index int
	oneOf []string
}

// Parse sets the fields of flags from their struct tags and from env, a
// comma-separated list of name=value pairs. Names are the lower-cased field
// names. A bool field may be given without a value to set it to true.
//
// Supported tags, separated by commas:
//
//	envflag:"default:<value>"   value used when env does not set the field
//	envflag:"oneof:<a>|<b>"     restricts a string field to the given values
//
// Bool, int and string fields are supported. All malformed elements of env
// are reported, joined into a single error.
func Parse[T any](flags *T, env string) error {
	fv := reflect.ValueOf(flags).Elem()
	ft := fv.Type()
	fields := make(map[string]field, ft.NumField())
	for i := range ft.NumField() {
		sf := ft.Field(i)
		name := strings.ToLower(sf.Name)
		f := field{index: i}
		var def *string
		if tag, ok := sf.Tag.Lookup("envflag"); ok {
			for _, part := range strings.Split(tag, ",") {
				key, rest, _ := strings.Cut(part, ":")
				switch key {
				case "default":
					def = &rest
				case "oneof":
					f.oneOf = strings.Split(rest, "|")
				default:
					return fmt.Errorf("unknown envflag tag %q", part)
				}
			}
		}
		if def != nil {
			val, err := f.parse(name, sf.Type.Kind(), *def)
			if err != nil {
				return err
			}
			fv.Field(i).Set(reflect.ValueOf(val))
		}
		fields[name] = f
	}

	var errs []error
	for _, elem := range strings.Split(env, ",") {
		if elem == "" {
			continue
		}
		name, str, hasValue := strings.Cut(elem, "=")
		name = strings.ToLower(name)
		f, ok := fields[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown flag %q", elem))
			continue
		}
		v := fv.Field(f.index)
		if !hasValue {
			if v.Kind() != reflect.Bool {
				errs = append(errs, fmt.Errorf("value needed for %s flag %q", v.Kind(), name))
				continue
			}
			str = "true"
		}
		val, err := f.parse(name, v.Kind(), str)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.Set(reflect.ValueOf(val))
	}
	return errors.Join(errs...)
}

func (f field) parse(name string, kind reflect.Kind, str string) (val any, err error) {
	switch kind {
	case reflect.Bool:
		val, err = strconv.ParseBool(str)
	case reflect.Int:
		val, err = strconv.Atoi(str)
	case reflect.String:
		if f.oneOf != nil && !slices.Contains(f.oneOf, str) {
			err = fmt.Errorf("want one of %s", strings.Join(f.oneOf, ", "))
		}
		val = str
	default:
		return nil, errInvalid{fmt.Errorf("unsupported kind %s", kind)}
	}
	if err != nil {
		return nil, errInvalid{fmt.Errorf("invalid %s value %q for %s: %v", kind, str, name, err)}
	}
	return val, nil
}

// ErrInvalid indicates a malformed value.
var ErrInvalid = errors.New("invalid value")

type errInvalid struct{ error }

func (errInvalid) Is(err error) bool {
	return err == ErrInvalid
}
