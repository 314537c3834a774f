//go:build js && wasm

// Package wasm exports the polytrans core to JavaScript, grounded on
// the teacher's cmd/dwscript-wasm/main.go global-registration pattern:
// a single top-level object installed on the JS global scope, holding
// one exported function per host-facing operation.
package wasm

import (
	"syscall/js"

	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/pkg/transpiler"
)

// RegisterAPI installs the PolyTrans global object in the JS
// environment. Call this once at program start, then block forever
// (see cmd/polytrans-wasm) so the exported functions stay reachable.
func RegisterAPI() {
	api := js.Global().Get("Object").New()
	api.Set("transpile", js.FuncOf(jsTranspile))
	js.Global().Set("PolyTrans", api)
}

// jsTranspile is the JS-callable form of transpiler.Transpile:
// PolyTrans.transpile(source, fromLanguageTag) -> {py, c, cpp, jv,
// success, errors}.
func jsTranspile(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorResult("transpile requires (source, fromLanguage)")
	}
	source := args[0].String()
	lang, ok := languageFromTag(args[1].String())
	if !ok {
		return errorResult("unknown source language: " + args[1].String())
	}
	result := transpiler.New().Transpile(source, lang)
	return resultToJS(result)
}

func languageFromTag(tag string) (langspec.Language, bool) {
	switch langspec.Language(tag) {
	case langspec.PY, langspec.C, langspec.CPP, langspec.JV:
		return langspec.Language(tag), true
	default:
		return "", false
	}
}

func resultToJS(r *transpiler.TranspileResult) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("py", r.PY)
	obj.Set("c", r.C)
	obj.Set("cpp", r.CPP)
	obj.Set("jv", r.JV)
	obj.Set("success", r.Success)
	errs := js.Global().Get("Array").New(len(r.Errors))
	for i, e := range r.Errors {
		errs.SetIndex(i, e)
	}
	obj.Set("errors", errs)
	return obj
}

func errorResult(msg string) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("success", false)
	errs := js.Global().Get("Array").New(1)
	errs.SetIndex(0, msg)
	obj.Set("errors", errs)
	return obj
}
