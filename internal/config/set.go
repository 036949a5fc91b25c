package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidArgument indicates a ":set" value of the wrong type or range.
var ErrInvalidArgument = errors.New("E474: Invalid argument")

type option struct {
	name  string
	short string
	num   func(e *EditorConfig) *int
	flag  func(e *EditorConfig) *bool
}

var options = []option{
	{name: "tabstop", short: "ts", num: func(e *EditorConfig) *int { return &e.TabStop }},
	{name: "shiftwidth", short: "sw", num: func(e *EditorConfig) *int { return &e.ShiftWidth }},
	{name: "expandtab", short: "et", flag: func(e *EditorConfig) *bool { return &e.ExpandTab }},
	{name: "undolevels", short: "ul", num: func(e *EditorConfig) *int { return &e.UndoLevels }},
	{name: "jumplistsize", num: func(e *EditorConfig) *int { return &e.JumpListSize }},
	{name: "changelistsize", num: func(e *EditorConfig) *int { return &e.ChangeListSize }},
	{name: "maxmacrodepth", num: func(e *EditorConfig) *int { return &e.MaxMacroDepth }},
	{name: "scrolloff", short: "so", num: func(e *EditorConfig) *int { return &e.ScrollOff }},
	{name: "textwidth", short: "tw", num: func(e *EditorConfig) *int { return &e.TextWidth }},
	{name: "wrapscan", short: "ws", flag: func(e *EditorConfig) *bool { return &e.WrapScan }},
}

func lookupOption(name string) (option, bool) {
	name = strings.ReplaceAll(name, "_", "")
	for _, o := range options {
		if name == o.name || (o.short != "" && name == o.short) {
			return o, true
		}
	}
	return option{}, false
}

func (o option) show(e *EditorConfig) string {
	if o.flag != nil {
		if *o.flag(e) {
			return "  " + o.name
		}
		return "no" + o.name
	}
	return fmt.Sprintf("  %s=%d", o.name, *o.num(e))
}

// Set applies the arguments of a ":set" command, e.g. "ts=4 noet sw?".
// It returns the text to show for queries. On error no argument after the
// failing one is applied.
func (e *EditorConfig) Set(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "all") {
		var shown []string
		for _, o := range options {
			shown = append(shown, strings.TrimSpace(o.show(e)))
		}
		return strings.Join(shown, "  "), nil
	}

	var shown []string
	for _, arg := range fields {
		msg, err := e.setOne(arg)
		if err != nil {
			return strings.Join(shown, "  "), err
		}
		if msg != "" {
			shown = append(shown, msg)
		}
	}
	return strings.Join(shown, "  "), nil
}

func (e *EditorConfig) setOne(arg string) (string, error) {
	name, op, value := splitSetArg(arg)

	o, ok := lookupOption(name)
	negate, invert := false, false
	if !ok && op == "" {
		switch {
		case strings.HasPrefix(name, "no"):
			o, ok = lookupOption(name[2:])
			negate = true
		case strings.HasPrefix(name, "inv"):
			o, ok = lookupOption(name[3:])
			invert = true
		}
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, arg)
	}
	if (negate || invert) && o.flag == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
	}

	switch op {
	case "?":
		return o.show(e), nil
	case "&":
		def := Default().Editor
		if o.flag != nil {
			*o.flag(e) = *o.flag(&def)
		} else {
			*o.num(e) = *o.num(&def)
		}
		return "", nil
	case "!":
		invert = true
	}

	if o.flag != nil {
		if op != "" && op != "!" {
			return "", fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
		}
		p := o.flag(e)
		switch {
		case invert:
			*p = !*p
		case negate:
			*p = false
		default:
			*p = true
		}
		return "", nil
	}

	if op == "" {
		return o.show(e), nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
	}
	p := o.num(e)
	next := *p
	switch op {
	case "=", ":":
		next = n
	case "+=":
		next += n
	case "-=":
		next -= n
	case "^=":
		next *= n
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
	}

	trial := *e
	*o.num(&trial) = next
	cfg := Default()
	cfg.Editor = trial
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
	}
	*p = next
	return "", nil
}

// splitSetArg splits "name+=value" into name, operator and value.
func splitSetArg(arg string) (name, op, value string) {
	if i := strings.IndexAny(arg, "=:"); i > 0 {
		name, op, value = arg[:i], arg[i:i+1], arg[i+1:]
		if c := name[len(name)-1]; op == "=" && (c == '+' || c == '-' || c == '^') {
			name, op = name[:len(name)-1], string(c)+"="
		}
		return name, op, value
	}
	if n := len(arg); n > 1 {
		switch arg[n-1] {
		case '?', '&', '!':
			return arg[:n-1], arg[n-1:], ""
		}
	}
	return arg, "", ""
}
