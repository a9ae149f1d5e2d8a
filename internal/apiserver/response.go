package apiserver

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, req *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, req, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write(body)
	logResponse(status, req, "OK")
}

func writeError(w http.ResponseWriter, req *http.Request, status int, userMsg string, cause error) {
	body, _ := json.Marshal(errorBody{Error: userMsg})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write(body)
	internal := userMsg
	if cause != nil {
		internal = cause.Error()
	}
	logResponse(status, req, internal)
}

func recoverTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		writeError(w, req, http.StatusInternalServerError, "an internal server error occurred", nil)
		log.Printf("ERROR panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()))
	}
}

// logResponse is adapted verbatim in shape from server/api's
// logHttpResponse: a padded level, the client's IP with ephemeral port
// stripped, method, path, and status.
func logResponse(status int, req *http.Request, msg string) {
	level := "INFO "
	if status >= 400 {
		level = "ERROR"
	}

	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, status, msg)
}
