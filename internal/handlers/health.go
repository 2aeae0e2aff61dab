package handlers

import (
	"fmt"
	"net/http"
)

// Health reports liveness. No auth, no dependencies.
func Health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}
