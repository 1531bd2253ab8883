package main

import (
	"fmt"
	"syscall"

	"github.com/lzradio/lzradio-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// hash-access-code reads a station access code from the terminal and
// prints the bcrypt hash to put in ACCESS_CODE_HASH.
func main() {
	cfg := config.Load()

	fmt.Println("=== Generate Station Access Code Hash ===")

	fmt.Print("Enter Access Code: ")
	byteCode, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading access code")
		return
	}
	fmt.Println() // Newline after hidden input
	code := string(byteCode)
	if len(code) < 6 {
		fmt.Println("Error: Access code must be at least 6 characters")
		return
	}

	fmt.Print("Confirm Access Code: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading confirmation")
		return
	}
	fmt.Println()
	if code != string(byteConfirm) {
		fmt.Println("Error: Access codes do not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), cfg.BcryptCost)
	if err != nil {
		fmt.Println("Error: Failed to hash access code")
		return
	}

	fmt.Println("Add this to your .env:")
	fmt.Printf("ACCESS_CODE_HASH=%s\n", string(hash))
}
