package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestInterpretCopyFlagLiteral(t *testing.T) {
	testCases := []struct {
		input      string
		expected   bool
		recognized bool
	}{
		{input: "", expected: true, recognized: true},
		{input: "true", expected: true, recognized: true},
		{input: "YES", expected: true, recognized: true},
		{input: "1", expected: true, recognized: true},
		{input: "false", expected: false, recognized: true},
		{input: "n", expected: false, recognized: true},
		{input: "0", expected: false, recognized: true},
		{input: "maybe", recognized: false},
	}
	for _, testCase := range testCases {
		actual, recognized := interpretCopyFlagLiteral(testCase.input)
		if recognized != testCase.recognized {
			t.Fatalf("interpretCopyFlagLiteral(%q) recognized = %v, expected %v", testCase.input, recognized, testCase.recognized)
		}
		if recognized && actual != testCase.expected {
			t.Fatalf("interpretCopyFlagLiteral(%q) = %v, expected %v", testCase.input, actual, testCase.expected)
		}
	}
}

func TestRegisterCopyFlagBareFlagEnablesCopy(t *testing.T) {
	var target bool
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCopyFlag(flagSet, &target)

	if err := flagSet.Parse([]string{"--copy"}); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !target {
		t.Fatalf("expected bare --copy to enable copying")
	}
}

func TestRegisterCopyFlagExplicitFalseDisablesCopy(t *testing.T) {
	var target bool
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCopyFlag(flagSet, &target)

	if err := flagSet.Parse([]string{"--copy=false"}); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if target {
		t.Fatalf("expected --copy=false to disable copying")
	}
}

func TestRegisterCopyFlagRejectsUnknownLiteral(t *testing.T) {
	var target bool
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCopyFlag(flagSet, &target)

	if err := flagSet.Parse([]string{"--copy=sometimes"}); err == nil {
		t.Fatalf("expected an error for an unrecognized literal")
	}
}
