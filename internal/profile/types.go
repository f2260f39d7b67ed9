package profile

// Profile is the static description of the represented person: bio, skills,
// contact links, curated Q/A pairs, and the media collections the chatbot can
// attach to replies. It is loaded once at startup and treated as an immutable
// snapshot; updates replace the whole value.
type Profile struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Projects   string   `json:"projects"`
	Contact    Contact  `json:"contact"`

	CommonQuestions []QA            `json:"commonQuestions"`
	YoutubeVideos   []Video         `json:"youtubeVideos"`
	MediumPosts     []Article       `json:"mediumPosts"`
	Certifications  []Certification `json:"certifications"`
	PersonalWebsite *Website        `json:"personalWebsite,omitempty"`

	// ResumeContent holds free text extracted from an uploaded résumé.
	ResumeContent string `json:"resumeContent,omitempty"`
}

// Contact holds the person's outward-facing links.
type Contact struct {
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// QA is a curated question with its canned answer.
type QA struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// Video describes one YouTube video attachment.
type Video struct {
	ID      int    `json:"id"`
	VideoID string `json:"videoId"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

// Article describes one published article attachment.
type Article struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Certification describes one earned certification.
type Certification struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	URL    string `json:"url"`
	Year   int    `json:"year"`
}

// Website describes the single embeddable personal website.
type Website struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
