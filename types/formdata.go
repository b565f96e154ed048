package types

type FormMode string

const (
	FormModeAdd  FormMode = "add"
	FormModeEdit FormMode = "edit"
)

// PromptForm is the transient state of the create-or-edit form. In add mode
// the fields start empty; in edit mode they are pre-populated from the prompt
// being edited and ID carries its identity through the submission.
type PromptForm struct {
	Mode       FormMode
	ID         uint
	Title      string
	Content    string
	IsFavorite bool
}

func NewPromptForm() PromptForm {
	return PromptForm{Mode: FormModeAdd}
}

func EditPromptForm(p Prompt) PromptForm {
	return PromptForm{
		Mode:       FormModeEdit,
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		IsFavorite: p.IsFavorite,
	}
}
