package types

import (
	errs "errors"
)

// HomePageData is everything the page needs for one render: the prompt list
// as the store returned it, the filter and sort controls' current values, the
// form state, and any messages to surface.
type HomePageData struct {
	Prompts []Prompt
	Filter  string
	Sort    string
	Form    PromptForm
	Notice  string
	Err     error
	FormErr error
}

func (d HomePageData) WithPrompts(prompts []Prompt) HomePageData {
	d.Prompts = append(d.Prompts, prompts...)
	return d
}

func (d HomePageData) WithForm(form PromptForm) HomePageData {
	d.Form = form
	return d
}

func (d HomePageData) WithNotice(s string) HomePageData {
	d.Notice = s
	return d
}

func (d HomePageData) WithError(err error) HomePageData {
	d.Err = errs.Join(d.Err, err)
	return d
}

func (d HomePageData) WithFormError(err error) HomePageData {
	d.FormErr = err
	return d
}
