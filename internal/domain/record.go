package domain

import "time"

// Author is the profile metadata attached to a record.
type Author struct {
	// ID is the author's identifier at the remote source, or the fixed
	// local-user id for records composed in this process.
	ID string

	// Name is the author's display name.
	Name string

	// Handle is the author's screen name, without the leading @.
	Handle string

	// AvatarURL points at the author's profile image.
	AvatarURL string
}

// Record represents a single feed post. Two records with the same ID are the
// same logical post; the later write wins on merge.
type Record struct {
	// ID is the stable identity used for de-duplication. Remote records use
	// the remote numeric id rendered in decimal; locally authored records
	// use the "local:" prefix so the two spaces can never collide.
	ID string

	// Text is the post body.
	Text string

	// CreatedAt is when the post was created at its origin. Zero if the
	// remote timestamp could not be parsed.
	CreatedAt time.Time

	// Author is the post's author.
	Author Author
}

// Local reports whether the record was authored in this process rather than
// fetched from the remote source.
func (r Record) Local() bool {
	return len(r.ID) > 6 && r.ID[:6] == "local:"
}
