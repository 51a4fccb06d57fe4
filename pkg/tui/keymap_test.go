package tui

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type helpKeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// TestKeymapCompleteness validates that all key.Matches calls in focus mode handlers
// are represented in the corresponding keymap's help display.
// This ensures when new keybindings are added to handlers, they're also added to help.
func TestKeymapCompleteness(t *testing.T) {
	tests := []struct {
		name             string
		functionName     string
		keymap           helpKeyMap
		keymapSourceName string // The name of the keymap variable used in key.Matches calls
	}{
		{
			name:             "switchTableFocusMode uses defaultKeyMap",
			functionName:     "switchTableFocusMode",
			keymap:           defaultKeyMap,
			keymapSourceName: "defaultKeyMap",
		},
		{
			name:             "switchIncidentFocusMode uses detailKeyMap",
			functionName:     "switchIncidentFocusMode",
			keymap:           detailKeyMap,
			keymapSourceName: "defaultKeyMap",
		},
		{
			name:             "switchErrorFocusMode uses errorViewKeyMap",
			functionName:     "switchErrorFocusMode",
			keymap:           errorViewKeyMap,
			keymapSourceName: "defaultKeyMap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchedKeys := extractKeyMatchesFromFunction(t, "msgHandlers.go", tt.functionName, tt.keymapSourceName)
			require.NotEmpty(t, matchedKeys, "no key.Matches calls found in %s", tt.functionName)

			helpKeys := make(map[string]bool)

			for _, binding := range tt.keymap.ShortHelp() {
				helpKeys[getBindingFieldName(binding)] = true
			}

			for _, column := range tt.keymap.FullHelp() {
				for _, binding := range column {
					helpKeys[getBindingFieldName(binding)] = true
				}
			}

			for _, keyField := range matchedKeys {
				assert.True(t, helpKeys[keyField],
					"Key binding '%s' is used in %s via key.Matches but not present in help display. "+
						"Please add it to the keymap's ShortHelp() or FullHelp() method.",
					keyField, tt.functionName)
			}
		})
	}
}

func TestKeyBindingsDoNotOverlap(t *testing.T) {
	seen := map[string]string{}

	val := reflect.ValueOf(defaultKeyMap)
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		b := val.Field(i).Interface().(key.Binding)
		for _, k := range b.Keys() {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, typ.Field(i).Name)
			}
			seen[k] = typ.Field(i).Name
		}
	}
}

// extractKeyMatchesFromFunction parses a Go source file and extracts all field names
// used in key.Matches calls within the specified function
func extractKeyMatchesFromFunction(t *testing.T, filename, functionName, keymapName string) []string {
	t.Helper()
	var matchedKeys []string

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, 0)
	require.NoError(t, err)

	var targetFunc *ast.FuncDecl
	for _, decl := range node.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == functionName {
			targetFunc = fn
			break
		}
	}
	require.NotNil(t, targetFunc, "function %s not found in %s", functionName, filename)

	ast.Inspect(targetFunc, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		ident, ok := sel.X.(*ast.Ident)
		if !ok || ident.Name != "key" || sel.Sel.Name != "Matches" {
			return true
		}

		if len(call.Args) < 2 {
			return true
		}

		// Second argument should be something like defaultKeyMap.Enter
		if selExpr, ok := call.Args[1].(*ast.SelectorExpr); ok {
			if ident, ok := selExpr.X.(*ast.Ident); ok && ident.Name == keymapName {
				matchedKeys = append(matchedKeys, selExpr.Sel.Name)
			}
		}

		return true
	})

	return matchedKeys
}

// getBindingFieldName uses reflection to find the field name of a key.Binding
// within defaultKeyMap; every help keymap is built from its bindings
func getBindingFieldName(binding key.Binding) string {
	val := reflect.ValueOf(defaultKeyMap)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Type() == reflect.TypeOf(binding) {
			fieldBinding := field.Interface().(key.Binding)
			if reflect.DeepEqual(fieldBinding.Keys(), binding.Keys()) {
				return typ.Field(i).Name
			}
		}
	}

	return ""
}
