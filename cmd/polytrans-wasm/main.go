//go:build js && wasm

// Package main is the WebAssembly entry point for polytrans. It
// exports the translator core to JavaScript and keeps the program
// alive for the WASM lifecycle.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o polytrans.wasm ./cmd/polytrans-wasm
//
// Usage from JavaScript:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("polytrans.wasm"), go.importObject)
//	    .then((result) => {
//	      go.run(result.instance);
//	      // PolyTrans.transpile(source, "scripting") is now available
//	    });
//	</script>
package main

import (
	"syscall/js"

	"github.com/cwbudde/polytrans/pkg/wasm"
)

func main() {
	done := make(chan struct{})

	wasm.RegisterAPI()
	js.Global().Get("console").Call("log", "PolyTrans WASM module initialized")

	<-done
}
