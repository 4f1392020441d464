package extract

import (
	"github.com/gaurav-prasanna/wikipipe/core"
)

// Attachments projects the page's attachment records into canonical shape.
// Absent fields keep their zero values.
func Attachments(page core.RawPage) ([]core.Attachment, error) {
	attachments := make([]core.Attachment, 0, len(page.Attachments))
	for _, att := range page.Attachments {
		attachments = append(attachments, core.Attachment{
			ID:        att.ID,
			Filename:  att.Filename,
			Size:      att.Size,
			MediaType: att.MediaType,
		})
	}
	return attachments, nil
}

// Comments projects the page's comment records into canonical shape.
// Comment bodies may contain markup, so each one is passed through the text
// normalizer.
func Comments(page core.RawPage) ([]core.Comment, error) {
	comments := make([]core.Comment, 0, len(page.Comments))
	for _, c := range page.Comments {
		content, err := Text(c.Content)
		if err != nil {
			return nil, err
		}
		comments = append(comments, core.Comment{
			ID:      c.ID,
			Author:  c.Author,
			Created: c.Created,
			Content: content,
		})
	}
	return comments, nil
}
