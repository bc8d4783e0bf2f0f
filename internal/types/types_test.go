package types

import "testing"

func TestTypeEquality(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"int-int", Int{}, Int{}, true},
		{"int-string", Int{}, String{}, false},
		{"list-same-elem", List{Elem: Int{}}, List{Elem: Int{}}, true},
		{"list-different-elem", List{Elem: Int{}}, List{Elem: String{}}, false},
		{"object-same-name", Object{Name: "Foo"}, Object{Name: "Foo"}, true},
		{"object-different-name", Object{Name: "Foo"}, Object{Name: "Bar"}, false},
		{"nested-list", List{Elem: List{Elem: String{}}}, List{Elem: List{Elem: String{}}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.equal {
				t.Errorf("%s.Equal(%s) = %v, want %v", c.a, c.b, got, c.equal)
			}
		})
	}
}

func TestDescriptors(t *testing.T) {
	cases := []struct {
		ty   Type
		want string
	}{
		{Int{}, "I"},
		{String{}, "Ljava/lang/String;"},
		{List{Elem: Int{}}, "Ljava/lang/Object;"},
		{Object{Name: "com/example/Foo"}, "Lcom/example/Foo;"},
	}
	for _, c := range cases {
		if got := c.ty.Descriptor(); got != c.want {
			t.Errorf("%s.Descriptor() = %q, want %q", c.ty, got, c.want)
		}
	}
}

func TestStackElementEqualIgnoresValue(t *testing.T) {
	a := StackElement{Ty: Int{}, Value: IntValue(3)}
	b := StackElement{Ty: Int{}, Value: IntValue(7)}
	if !a.Equal(b) {
		t.Errorf("expected elements with equal types but different values to be Equal")
	}
	c := StackElement{Ty: String{}, Value: nil}
	if a.Equal(c) {
		t.Errorf("expected elements with different types to not be Equal")
	}
}

func TestListValueStringUnknownElement(t *testing.T) {
	v := ListValue{IntValue(1), nil, IntValue(3)}
	want := "[1, ?, 3]"
	if got := v.String(); got != want {
		t.Errorf("ListValue.String() = %q, want %q", got, want)
	}
}

func TestIsNumber(t *testing.T) {
	if !IsNumber(Int{}) {
		t.Errorf("expected Int to be a number")
	}
	if IsNumber(String{}) {
		t.Errorf("expected String to not be a number")
	}
}
