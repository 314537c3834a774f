package idiom

// IsMainFunctionName reports whether name is the conventional top-level
// entry point the emitters wrap into "int main()" when it appears
// as a free Function rather than inside a class.
func IsMainFunctionName(name string) bool { return name == "main" }
