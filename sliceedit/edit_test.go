package sliceedit

import (
	"reflect"
	"testing"
)

func TestFindAll(t *testing.T) {
	type args struct {
		buf  string
		item string
	}
	tests := []struct {
		name string
		args args
		want []int
	}{
		{
			name: "no occurrences",
			args: args{buf: "plain text", item: "**"},
			want: []int{},
		},
		{
			name: "two occurrences",
			args: args{buf: "a **bold** b", item: "**"},
			want: []int{2, 8},
		},
		{
			name: "non-overlapping run",
			args: args{buf: "^^^^", item: "^^"},
			want: []int{0, 2},
		},
		{
			name: "empty item",
			args: args{buf: "anything", item: ""},
			want: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindAll([]byte(tt.args.buf), tt.args.item); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBufferReplaceAllString(t *testing.T) {
	b := NewBuffer([]byte("x $$a$$ y $$"))
	b.ReplaceAllString("$$", "$")
	if got, want := b.String(), "x $a$ y $"; got != want {
		t.Errorf("ReplaceAllString() = %q, want %q", got, want)
	}
}

func TestBufferWrapPairs(t *testing.T) {
	type args struct {
		src    string
		delim  string
		prefix string
		suffix string
	}
	tests := []struct {
		name      string
		args      args
		want      string
		wantPairs int
	}{
		{
			name:      "one pair",
			args:      args{src: "an __emphasized__ word", delim: "__", prefix: `\emph{`, suffix: "}"},
			want:      `an \emph{emphasized} word`,
			wantPairs: 1,
		},
		{
			name:      "two pairs",
			args:      args{src: "**a** and **b**", delim: "**", prefix: `\textbf{`, suffix: "}"},
			want:      `\textbf{a} and \textbf{b}`,
			wantPairs: 2,
		},
		{
			name:      "unmatched trailing delimiter stays",
			args:      args{src: "__a__ b __c", delim: "__", prefix: `\emph{`, suffix: "}"},
			want:      `\emph{a} b __c`,
			wantPairs: 1,
		},
		{
			name:      "single delimiter stays",
			args:      args{src: "a __ b", delim: "__", prefix: `\emph{`, suffix: "}"},
			want:      "a __ b",
			wantPairs: 0,
		},
		{
			name:      "adjacent pair wraps nothing",
			args:      args{src: "a ^^^^ b", delim: "^^", prefix: `\hl{`, suffix: "}"},
			want:      `a \hl{} b`,
			wantPairs: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer([]byte(tt.args.src))
			if got := b.WrapPairs(tt.args.delim, tt.args.prefix, tt.args.suffix); got != tt.wantPairs {
				t.Errorf("WrapPairs() = %v, want %v", got, tt.wantPairs)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("WrapPairs() buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferQueuesCommutingEdits(t *testing.T) {
	// Different delimiters never share byte ranges, so one buffer can carry
	// the whole markup pass.
	b := NewBuffer([]byte("__a **b** c__ $$d$$"))
	b.WrapPairs("__", `\emph{`, "}")
	b.WrapPairs("**", `\textbf{`, "}")
	b.ReplaceAllString("$$", "$")
	if got, want := b.String(), `\emph{a \textbf{b} c} $d$`; got != want {
		t.Errorf("combined edits = %q, want %q", got, want)
	}
}
