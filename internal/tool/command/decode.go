package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// KeyPrefix prefixes every command key in a batch.
const KeyPrefix = "command"

// Entry is one decoded element of a batch. Exactly one of Command and Err is set.
type Entry struct {
	Key     string
	Command Command
	Err     error
}

type validator interface {
	validate() error
}

// Decode maps a raw argument object onto its command variant.
// Unknown keys are ignored and scalar values are coerced where sensible,
// so "5" decodes into an int field.
func Decode(raw map[string]any) (Command, error) {
	typ, _ := raw["type"].(string)

	var cmd Command
	switch typ {
	case TypeSearch:
		cmd = &Search{}
	case TypeReadFile:
		cmd = &ReadFile{}
	case TypeTree:
		cmd = &Tree{}
	case TypeList:
		cmd = &List{}
	case TypeGlob:
		cmd = &Glob{}
	default:
		if typ == "" && raw["type"] != nil {
			typ = fmt.Sprint(raw["type"])
		}
		return nil, &UnknownTypeError{Type: typ}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cmd,
	})
	if err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if err := cmd.(validator).validate(); err != nil {
		return nil, err
	}
	return deref(cmd), nil
}

// deref returns the value form so callers can type switch on plain structs.
func deref(cmd Command) Command {
	switch c := cmd.(type) {
	case *Search:
		return *c
	case *ReadFile:
		return *c
	case *Tree:
		return *c
	case *List:
		return *c
	case *Glob:
		return *c
	}
	return cmd
}

// ParseBatch decodes every "commandN" entry of a tool call's arguments in
// ascending ordinal order. Values that are not objects are skipped.
func ParseBatch(args map[string]any) []Entry {
	var keys []string
	for k, v := range args {
		if !strings.HasPrefix(k, KeyPrefix) {
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			continue
		}
		keys = append(keys, k)
	}
	SortKeys(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		cmd, err := Decode(args[k].(map[string]any))
		entries = append(entries, Entry{Key: k, Command: cmd, Err: err})
	}
	return entries
}

// SortKeys orders command keys by numeric ordinal, so command10 follows
// command9. Keys without a numeric suffix sort last, lexically.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		oi, iok := ordinal(keys[i])
		oj, jok := ordinal(keys[j])
		switch {
		case iok && jok:
			if oi != oj {
				return oi < oj
			}
			return keys[i] < keys[j]
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
}

func ordinal(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, KeyPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
