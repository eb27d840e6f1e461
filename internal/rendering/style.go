package rendering

import (
	"html/template"

	"github.com/jonathan/resume-builder/internal/types"
)

// SkillsLayout selects how the skills list is presented
type SkillsLayout string

// Skills layouts
const (
	SkillsInline  SkillsLayout = "inline"
	SkillsChips   SkillsLayout = "chips"
	SkillsSidebar SkillsLayout = "sidebar"
)

// Style holds the presentation tokens of one template variant. The shared
// section templates read only these tokens, so a new variant needs a Style
// and a shell, never new filtering logic.
type Style struct {
	ID    types.TemplateID
	Shell string

	Container template.CSS
	Banner    template.CSS
	Main      template.CSS
	Sidebar   template.CSS

	HeaderBlock      template.CSS
	NameStyle        template.CSS
	AccentBar        template.CSS
	ContactStyle     template.CSS
	ContactSeparator string
	ContactInHeader  bool
	ShowLinks        bool
	LinkStyle        template.CSS
	WebsiteLabel     string

	SectionBlock      template.CSS
	HeadingStyle      template.CSS
	SummaryHeading    bool
	SummaryStyle      template.CSS
	ExperienceHeading string

	EntryTitleStyle template.CSS
	EntryDateStyle  template.CSS
	EntryMetaStyle  template.CSS
	EntryBodyStyle  template.CSS

	Skills         SkillsLayout
	SkillStyle     template.CSS
	SkillSeparator string
}

var styles = map[types.TemplateID]Style{
	types.TemplateProfessional: {
		ID:                types.TemplateProfessional,
		Shell:             "professional",
		Container:         "padding: 40px; font-family: 'Georgia', serif; color: #333; line-height: 1.6;",
		HeaderBlock:       "text-align: center; margin-bottom: 30px; border-bottom: 2px solid #2563eb; padding-bottom: 20px;",
		NameStyle:         "font-size: 36px; margin: 0 0 10px 0; color: #1e293b; font-weight: 700;",
		ContactStyle:      "font-size: 13px; color: #64748b;",
		ContactSeparator:  " • ",
		ContactInHeader:   true,
		ShowLinks:         true,
		LinkStyle:         "color: #2563eb; margin-right: 15px;",
		WebsiteLabel:      "Portfolio",
		SectionBlock:      "margin-bottom: 30px;",
		HeadingStyle:      "font-size: 18px; color: #1e293b; margin-bottom: 15px; font-weight: 600; border-left: 4px solid #2563eb; padding-left: 12px;",
		SummaryHeading:    true,
		SummaryStyle:      "font-size: 13px; line-height: 1.7; color: #475569;",
		ExperienceHeading: "Work Experience",
		EntryTitleStyle:   "font-size: 15px; margin: 0; font-weight: 600; color: #1e293b;",
		EntryDateStyle:    "font-size: 12px; color: #64748b;",
		EntryMetaStyle:    "font-size: 13px; color: #2563eb; margin-bottom: 3px;",
		EntryBodyStyle:    "font-size: 12px; line-height: 1.7; color: #475569; margin-top: 8px; white-space: pre-line;",
		Skills:            SkillsInline,
		SkillStyle:        "font-size: 12px; line-height: 2; color: #475569;",
		SkillSeparator:    " • ",
	},
	types.TemplateModern: {
		ID:                types.TemplateModern,
		Shell:             "modern",
		Container:         "font-family: 'Arial', sans-serif; color: #2c3e50;",
		Banner:            "background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px;",
		Main:              "padding: 40px;",
		HeaderBlock:       "text-align: center;",
		NameStyle:         "font-size: 42px; margin: 0 0 10px 0; font-weight: 700; letter-spacing: 1px;",
		ContactStyle:      "font-size: 14px; opacity: 0.95;",
		ContactSeparator:  " • ",
		ContactInHeader:   true,
		ShowLinks:         true,
		LinkStyle:         "color: white; margin-right: 15px; text-decoration: underline;",
		WebsiteLabel:      "Website",
		SectionBlock:      "margin-bottom: 30px;",
		HeadingStyle:      "font-size: 20px; color: #667eea; margin-bottom: 15px; font-weight: 600;",
		SummaryHeading:    true,
		SummaryStyle:      "font-size: 13px; line-height: 1.7; color: #555; text-align: justify;",
		ExperienceHeading: "Work Experience",
		EntryTitleStyle:   "font-size: 15px; margin: 0; font-weight: 600; color: #1e293b;",
		EntryDateStyle:    "font-size: 12px; color: #64748b;",
		EntryMetaStyle:    "font-size: 13px; color: #667eea; margin-bottom: 3px;",
		EntryBodyStyle:    "font-size: 12px; line-height: 1.7; color: #475569; margin-top: 8px; white-space: pre-line;",
		Skills:            SkillsChips,
		SkillStyle:        "background: #667eea; color: white; padding: 6px 14px; border-radius: 20px; font-size: 11px; font-weight: 500; margin: 0 8px 8px 0; display: inline-block;",
	},
	types.TemplateCreative: {
		ID:                types.TemplateCreative,
		Shell:             "creative",
		Container:         "font-family: 'Verdana', sans-serif; color: #444; display: grid; grid-template-columns: 250px 1fr;",
		Sidebar:           "background: #2c3e50; color: white; padding: 40px 30px;",
		Main:              "padding: 40px;",
		HeaderBlock:       "margin-bottom: 30px;",
		NameStyle:         "font-size: 36px; margin: 0 0 5px 0; color: #2c3e50; font-weight: 700;",
		AccentBar:         "height: 3px; width: 60px; background: #667eea; margin: 10px 0;",
		SectionBlock:      "margin-bottom: 30px;",
		HeadingStyle:      "font-size: 20px; color: #667eea; margin-bottom: 15px; font-weight: 600;",
		SummaryHeading:    true,
		SummaryStyle:      "font-size: 13px; line-height: 1.7; color: #555; text-align: justify;",
		ExperienceHeading: "Work Experience",
		EntryTitleStyle:   "font-size: 15px; margin: 0; font-weight: 600; color: #2c3e50;",
		EntryDateStyle:    "font-size: 12px; color: #64748b;",
		EntryMetaStyle:    "font-size: 13px; color: #667eea; margin-bottom: 3px;",
		EntryBodyStyle:    "font-size: 12px; line-height: 1.7; color: #555; margin-top: 8px; white-space: pre-line;",
		Skills:            SkillsSidebar,
		SkillStyle:        "font-size: 11px; margin-bottom: 8px;",
	},
	types.TemplateMinimal: {
		ID:                types.TemplateMinimal,
		Shell:             "minimal",
		Container:         "padding: 60px; font-family: 'Helvetica', sans-serif; color: #000; max-width: 750px; margin: 0 auto;",
		HeaderBlock:       "text-align: center; margin-bottom: 40px; border-bottom: 2px solid #000; padding-bottom: 20px;",
		NameStyle:         "font-size: 32px; margin: 0 0 10px 0; font-weight: 400; text-transform: uppercase; letter-spacing: 3px;",
		ContactStyle:      "font-size: 12px; color: #666;",
		ContactSeparator:  " | ",
		ContactInHeader:   true,
		SectionBlock:      "margin-bottom: 30px;",
		HeadingStyle:      "font-size: 14px; margin-bottom: 20px; font-weight: 400; text-transform: uppercase; letter-spacing: 2px; border-bottom: 1px solid #000; padding-bottom: 8px;",
		SummaryStyle:      "font-size: 12px; line-height: 1.8; color: #333; font-style: italic;",
		ExperienceHeading: "Experience",
		EntryTitleStyle:   "font-size: 13px; margin: 0; font-weight: 700;",
		EntryDateStyle:    "font-size: 11px; color: #666;",
		EntryMetaStyle:    "font-size: 12px; color: #666;",
		EntryBodyStyle:    "font-size: 11px; line-height: 1.6; color: #444; white-space: pre-line;",
		Skills:            SkillsInline,
		SkillStyle:        "font-size: 11px; line-height: 2;",
		SkillSeparator:    " • ",
	},
}

// StyleFor returns the style of a template id, falling back to professional.
func StyleFor(id types.TemplateID) Style {
	if s, ok := styles[id]; ok {
		return s
	}
	return styles[types.DefaultTemplate]
}

// Styles returns a copy of every registered style.
func Styles() map[types.TemplateID]Style {
	out := make(map[types.TemplateID]Style, len(styles))
	for id, s := range styles {
		out[id] = s
	}
	return out
}
