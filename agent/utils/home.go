package utils

import (
	"os"
	"os/user"
)

// IndyBaseDir returns the directory under which libindy keeps its client
// files. It's the user's home.
func IndyBaseDir() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	currentUser, err := user.Current()
	if err != nil {
		panic(err)
	}
	return currentUser.HomeDir
}
