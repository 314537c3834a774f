package idiom

import "testing"

func TestIsMainFunctionName(t *testing.T) {
	if !IsMainFunctionName("main") {
		t.Error("expected \"main\" to be recognized as the entry point")
	}
	if IsMainFunctionName("Main") {
		t.Error("entry-point name matching should be case-sensitive")
	}
	if IsMainFunctionName("run") {
		t.Error("\"run\" should not be recognized as the entry point")
	}
}
