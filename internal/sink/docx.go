package sink

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 13
	titleSize   = 16
	headingSize = 14
)

// writeMinutes renders the meeting record as a styled minutes document.
func writeMinutes(rec Record, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "Meeting Minutes — "+rec.MeetingID, true, titleSize)
	addStyledRun(doc.AddParagraph(""), rec.CreatedAt.Format("2006-01-02 15:04"), false, fontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize)
	addStyledRun(doc.AddParagraph(""), rec.Summary.Summary, false, fontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Action Items", true, headingSize)
	if len(rec.Summary.ActionItems) == 0 {
		addStyledRun(doc.AddParagraph(""), "None recorded.", false, fontSize)
	}
	for _, item := range rec.Summary.ActionItems {
		addStyledRun(doc.AddParagraph(""), "• "+item, false, fontSize)
	}
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Participants", true, headingSize)
	if len(rec.Summary.Participants) == 0 {
		addStyledRun(doc.AddParagraph(""), "None recorded.", false, fontSize)
	}
	for _, name := range rec.Summary.Participants {
		addStyledRun(doc.AddParagraph(""), "• "+name, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
