package composer

import (
	"reflect"
	"testing"

	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/router"
)

func demoProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p := profile.Demo()
	return &p
}

func TestCompose_Videos(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryVideos, nil, p)

	wantText := "Here are my testing videos that showcase my automation expertise:"
	if resp.Text != wantText {
		t.Errorf("Text = %q, want %q", resp.Text, wantText)
	}

	wantSuggestions := []string{
		"What articles have you written?",
		"Show me your personal website",
		"What are your skills?",
		"How do you approach testing?",
	}
	if !reflect.DeepEqual(resp.Suggestions, wantSuggestions) {
		t.Errorf("Suggestions = %v, want %v", resp.Suggestions, wantSuggestions)
	}

	if resp.Attachments == nil {
		t.Fatal("Attachments = nil")
	}
	if !reflect.DeepEqual(resp.Attachments.Videos, p.YoutubeVideos) {
		t.Errorf("Attachments.Videos = %v, want profile's videos unchanged", resp.Attachments.Videos)
	}
	if resp.Source != router.CategoryVideos {
		t.Errorf("Source = %s, want %s", resp.Source, router.CategoryVideos)
	}
}

func TestCompose_AttachmentsSharedNotCopied(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryVideos, nil, p)
	if len(resp.Attachments.Videos) == 0 || len(p.YoutubeVideos) == 0 {
		t.Fatal("demo profile has no videos")
	}
	if &resp.Attachments.Videos[0] != &p.YoutubeVideos[0] {
		t.Error("Attachments.Videos is a copy, want the profile slice shared by reference")
	}
}

func TestCompose_Website(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryWebsite, nil, p)
	if resp.Attachments == nil || resp.Attachments.Website != p.PersonalWebsite {
		t.Error("Attachments.Website does not point at the profile's website")
	}
	if resp.Text == "" {
		t.Error("Text is empty")
	}
}

func TestCompose_Articles(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryArticles, nil, p)
	if resp.Attachments == nil || !reflect.DeepEqual(resp.Attachments.Articles, p.MediumPosts) {
		t.Error("Attachments.Articles does not match profile's articles")
	}
}

func TestCompose_Certifications(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryCertifications, nil, p)
	if resp.Attachments == nil || !reflect.DeepEqual(resp.Attachments.Certifications, p.Certifications) {
		t.Error("Attachments.Certifications does not match profile's certifications")
	}
}

func TestCompose_CommonQuestion(t *testing.T) {
	p := demoProfile(t)
	qa := &profile.QA{Question: "Who are you?", Response: "I'm a QA engineer."}

	resp := Compose(router.CategoryCommonQuestion, qa, p)
	if resp.Text != qa.Response {
		t.Errorf("Text = %q, want %q", resp.Text, qa.Response)
	}
	if resp.Attachments != nil {
		t.Errorf("Attachments = %+v, want nil", resp.Attachments)
	}
}

func TestCompose_FallbackMenu(t *testing.T) {
	p := demoProfile(t)

	resp := Compose(router.CategoryFallback, nil, p)
	if resp.Source != router.CategoryFallback {
		t.Errorf("Source = %s, want %s", resp.Source, router.CategoryFallback)
	}
	if resp.Text == "" {
		t.Fatal("Text is empty")
	}
	if p.Contact.Email == "" {
		t.Fatal("demo profile has no contact email")
	}
	if !contains(resp.Text, p.Contact.Email) {
		t.Errorf("fallback text does not mention contact email %q", p.Contact.Email)
	}
}

func TestCompose_Pure(t *testing.T) {
	p := demoProfile(t)

	first := Compose(router.CategoryVideos, nil, p)
	second := Compose(router.CategoryVideos, nil, p)
	if !reflect.DeepEqual(first, second) {
		t.Error("Compose is not deterministic for identical inputs")
	}
}

func TestSuggestions_NonEmptyForAllCategories(t *testing.T) {
	cats := []router.Category{
		router.CategoryWebsite,
		router.CategoryVideos,
		router.CategoryArticles,
		router.CategoryCertifications,
		router.CategoryCommonQuestion,
		router.CategoryFallback,
	}
	for _, cat := range cats {
		if len(Suggestions(cat)) == 0 {
			t.Errorf("Suggestions(%s) is empty", cat)
		}
	}
}

func TestSuggestions_UnknownCategoryUsesFallback(t *testing.T) {
	got := Suggestions(router.Category("bogus"))
	want := Suggestions(router.CategoryFallback)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(bogus) = %v, want fallback list %v", got, want)
	}
}

// The curated common-question and fallback lists must not repeat any entry
// from the category-specific lists.
func TestSuggestions_CuratedListsDisjoint(t *testing.T) {
	keyword := map[string]bool{}
	for _, cat := range []router.Category{
		router.CategoryWebsite,
		router.CategoryVideos,
		router.CategoryArticles,
		router.CategoryCertifications,
	} {
		for _, s := range Suggestions(cat) {
			keyword[s] = true
		}
	}

	for _, cat := range []router.Category{router.CategoryCommonQuestion, router.CategoryFallback} {
		for _, s := range Suggestions(cat) {
			if keyword[s] {
				t.Errorf("suggestion %q from %s also appears in a keyword category list", s, cat)
			}
		}
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
