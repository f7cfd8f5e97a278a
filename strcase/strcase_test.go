package strcase

import (
	"errors"
	"testing"
)

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		input     string
		pascal    string
		camel     string
		snake     string
		kebab     string
		screaming string
	}{
		{"widget", "Widget", "widget", "widget", "widget", "WIDGET"},
		{"my_widget", "MyWidget", "myWidget", "my_widget", "my-widget", "MY_WIDGET"},
		{"myWidget", "MyWidget", "myWidget", "my_widget", "my-widget", "MY_WIDGET"},
		{"MyWidget", "MyWidget", "myWidget", "my_widget", "my-widget", "MY_WIDGET"},
		{"my-widget", "MyWidget", "myWidget", "my_widget", "my-widget", "MY_WIDGET"},
		{"my widget", "MyWidget", "myWidget", "my_widget", "my-widget", "MY_WIDGET"},
		{"http_server", "HttpServer", "httpServer", "http_server", "http-server", "HTTP_SERVER"},
		{"HTTPServer", "HttpServer", "httpServer", "http_server", "http-server", "HTTP_SERVER"},
		{"OrderLineItem", "OrderLineItem", "orderLineItem", "order_line_item", "order-line-item", "ORDER_LINE_ITEM"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got, _ := ToPascalCase(tt.input); got != tt.pascal {
				t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.pascal)
			}
			if got, _ := ToCamelCase(tt.input); got != tt.camel {
				t.Errorf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.camel)
			}
			if got, _ := ToSnakeCase(tt.input); got != tt.snake {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.snake)
			}
			if got, _ := ToKebabCase(tt.input); got != tt.kebab {
				t.Errorf("ToKebabCase(%q) = %q, want %q", tt.input, got, tt.kebab)
			}
			if got, _ := ToScreamingCase(tt.input); got != tt.screaming {
				t.Errorf("ToScreamingCase(%q) = %q, want %q", tt.input, got, tt.screaming)
			}
		})
	}
}

func TestSnakeRoundTripIsIdempotent(t *testing.T) {
	inputs := []string{"widget", "HTTPServer", "order_line_item", "myWidget", "some-kebab-name"}
	for _, in := range inputs {
		snake, err := ToSnakeCase(in)
		if err != nil {
			t.Fatalf("ToSnakeCase(%q) error = %v", in, err)
		}
		pascal, err := ToPascalCase(snake)
		if err != nil {
			t.Fatalf("ToPascalCase(%q) error = %v", snake, err)
		}
		again, err := ToSnakeCase(pascal)
		if err != nil {
			t.Fatalf("ToSnakeCase(%q) error = %v", pascal, err)
		}
		if again != snake {
			t.Errorf("round trip of %q: got %q, want %q", in, again, snake)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"product", "products"},
		{"category", "categories"},
		{"box", "boxes"},
		{"class", "classes"},
		{"bus", "buses"},
		{"quiz", "quizes"},
		{"church", "churches"},
		{"dish", "dishes"},
		{"day", "days"},
		{"key", "keys"},
		{"person", "people"},
		{"Person", "People"},
		{"child", "children"},
		{"sheep", "sheep"},
		{"data", "data"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Pluralize(tt.input)
			if err != nil {
				t.Fatalf("Pluralize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Pluralize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	for name, fn := range map[string]func(string) (string, error){
		"pascal":    ToPascalCase,
		"camel":     ToCamelCase,
		"snake":     ToSnakeCase,
		"kebab":     ToKebabCase,
		"screaming": ToScreamingCase,
		"plural":    Pluralize,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := fn(""); !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("%s(\"\") error = %v, want ErrInvalidIdentifier", name, err)
			}
		})
	}
}
