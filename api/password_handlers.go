package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

// The same message goes back whether or not the email is registered, so the
// endpoint cannot be used to probe for accounts.
const forgotPasswordMessage = "if this account exists, a password reset link was sent"

func (app *application) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkEmail(input.Email)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	output := struct {
		Message string `json:"message"`
		Token   string `json:"token,omitempty"`
	}{
		Message: forgotPasswordMessage,
	}

	u, err := app.storage.getUserByEmail(input.Email)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if u == nil {
		writeJSON(w, http.StatusOK, output)
		return
	}

	t, err := app.storage.createResetToken(u.Email)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	err = app.mailer.sendPasswordReset(u.Email, t.Token)
	if err != nil {
		// a failed delivery must not strand the flow: outside production the
		// token rides along in the response, in production it only gets logged
		log.Printf("failed to send reset email to %s: %v", u.Email, err)
		if app.config.env != "production" {
			output.Token = t.Token
		}
	}
	writeJSON(w, http.StatusOK, output)
}

func (app *application) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkCond(input.Token != "", "token", "must be provided")
	v.checkPassword(input.Password)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	t, err := app.storage.getResetToken(input.Token)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if t == nil {
		writeError(w, errors.New("invalid or expired token"), http.StatusBadRequest)
		return
	}
	if time.Now().After(t.ExpiresAt) {
		writeError(w, errors.New("token has expired"), http.StatusBadRequest)
		return
	}

	// claim before rewriting the hash; losing the claim means a concurrent
	// confirm got there first
	ok, err := app.storage.consumeResetToken(t.Token)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if !ok {
		writeError(w, errors.New("invalid or expired token"), http.StatusBadRequest)
		return
	}

	err = app.storage.updateUserPassword(t.Email, input.Password)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
