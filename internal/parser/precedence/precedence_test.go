package precedence

import "testing"

func TestOfOperatorLevels(t *testing.T) {
	tests := []struct {
		op   string
		want Level
	}{
		{"=", Assignment},
		{"+=", Assignment},
		{"-=", Assignment},
		{"*=", Assignment},
		{"/=", Assignment},
		{"||", LogicalOr},
		{"&&", LogicalAnd},
		{"==", Equality},
		{"!=", Equality},
		{"<", Relational},
		{">", Relational},
		{"<=", Relational},
		{">=", Relational},
		{"+", Additive},
		{"-", Additive},
		{"*", Multiplicative},
		{"/", Multiplicative},
		{"%", Multiplicative},
		{"//", Multiplicative},
		{"**", Multiplicative},
		{"??", Lowest},
	}
	for _, tt := range tests {
		if got := OfOperator(tt.op); got != tt.want {
			t.Errorf("OfOperator(%q) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(Lowest < Assignment && Assignment < LogicalOr && LogicalOr < LogicalAnd &&
		LogicalAnd < Equality && Equality < Relational && Relational < Additive &&
		Additive < Multiplicative && Multiplicative < Unary && Unary < Postfix &&
		Postfix < Call && Call < Primary) {
		t.Fatal("precedence levels are not strictly increasing in declaration order")
	}
}
