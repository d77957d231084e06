package main

import (
	"net/http"
	"strings"
)

// NewsletterView renders the subscription form state inline.
type NewsletterView struct {
	Email      string
	StatusTone string
	StatusText string
}

// NewsletterHandler acknowledges a subscription. Nothing is stored and no
// mail is sent; the only validation is a non-empty address.
func NewsletterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))

	view := NewsletterView{Email: email}
	if email == "" {
		view.StatusTone = "error"
		view.StatusText = "Enter an email address first."
	} else {
		view.StatusTone = "success"
		view.StatusText = "Thanks for subscribing with: " + email
		view.Email = ""
	}
	renderTemplate(w, r, "frag_newsletter", view)
}
