package classifier

import (
	"errors"
	"strings"
	"testing"
)

func TestNewContext_Flags(t *testing.T) {
	tests := []struct {
		name                      string
		title, desc               string
		numbers, year, acronym    bool
	}{
		{"plain", "cooking pasta", "", false, false, false},
		{"numbers", "Top 10 tricks", "", true, false, false},
		{"year in description", "news", "recorded in 2023", false, true, false},
		{"year must stand alone", "id 12023", "", true, false, false},
		{"acronym", "Learn SQL today", "", false, false, true},
		{"single capital", "A Story", "", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.title, tt.desc, "")
			if ctx.HasNumbers != tt.numbers {
				t.Errorf("HasNumbers = %v, want %v", ctx.HasNumbers, tt.numbers)
			}
			if ctx.HasYear != tt.year {
				t.Errorf("HasYear = %v, want %v", ctx.HasYear, tt.year)
			}
			if ctx.HasAcronym != tt.acronym {
				t.Errorf("HasAcronym = %v, want %v", ctx.HasAcronym, tt.acronym)
			}
		})
	}
}

func TestNewContext_Normalization(t *testing.T) {
	ctx := NewContext("Hello World", "Some Text", "My CHANNEL")
	if ctx.Text != "hello world some text" {
		t.Errorf("Text = %q", ctx.Text)
	}
	if ctx.Channel != "my channel" {
		t.Errorf("Channel = %q", ctx.Channel)
	}
	if ctx.Title != "Hello World" {
		t.Errorf("Title = %q, want case preserved", ctx.Title)
	}
	if ctx.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4", ctx.WordCount)
	}
}

func TestNewContext_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", 600)
	ctx := NewContext("t", long, "")
	if n := len([]rune(ctx.Description)); n != MaxDescriptionRunes {
		t.Errorf("description runes = %d, want %d", n, MaxDescriptionRunes)
	}

	short := "short"
	if got := NewContext("t", short, "").Description; got != short {
		t.Errorf("Description = %q, want %q", got, short)
	}
}

func TestDecodeRequest_Valid(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"title":"Intro to Go","description":"basics","channel":"Go Academy","video_id":"abc"}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if req.Title != "Intro to Go" || req.Description != "basics" || req.Channel != "Go Academy" {
		t.Errorf("req = %+v", req)
	}
}

func TestDecodeRequest_AbsentFieldsAreEmpty(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"title":"only a title"}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if req.Description != "" || req.Channel != "" {
		t.Errorf("req = %+v, want empty description and channel", req)
	}
}

func TestDecodeRequest_RejectsNonStrings(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"number title", `{"title":42}`, "title"},
		{"null channel", `{"title":"x","channel":null}`, "channel"},
		{"array description", `{"description":["a"]}`, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %T, want *FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestDecodeRequest_RejectsMalformed(t *testing.T) {
	for _, raw := range []string{`not json`, `["title"]`, `"title"`} {
		_, err := DecodeRequest([]byte(raw))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("DecodeRequest(%s) err = %v, want ErrInvalidArgument", raw, err)
		}
	}
}

func TestClassifyRequest(t *testing.T) {
	e := Default()
	req := Request{Title: "Organic Chemistry Lecture 5", Channel: "Yale University"}
	if got, want := e.ClassifyRequest(req), e.Classify(req.Title, "", req.Channel); got.EducationalScore != want.EducationalScore {
		t.Errorf("ClassifyRequest score = %d, want %d", got.EducationalScore, want.EducationalScore)
	}
}
