// Command cli is a small client for the ledger API, handy for smoke-testing a
// running server: register and log in, open an account, move money and read
// balances without leaving the terminal.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultBaseURL = "http://localhost:3000"

var (
	success = color.New(color.FgGreen).PrintfFunc()
	failure = color.New(color.FgRed).PrintfFunc()
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println("Commands:")
		fmt.Println("  register <username> <email>")
		fmt.Println("  login <username>")
		fmt.Println("  create <savings|current>")
		fmt.Println("  deposit <account_id> <amount>")
		fmt.Println("  withdraw <account_id> <amount>")
		fmt.Println("  balance <account_id>")
		fmt.Println("  accounts")
		return
	}

	baseURL := os.Getenv("LEDGER_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &client{base: baseURL, token: os.Getenv("LEDGER_TOKEN")}

	switch cmd := os.Args[1]; cmd {
	case "register":
		if len(os.Args) < 4 {
			fmt.Println("Usage: register <username> <email>")
			return
		}
		password, err := readPassword()
		if err != nil {
			failure("Failed to read password: %v\n", err)
			return
		}
		body := map[string]string{"username": os.Args[2], "email": os.Args[3], "password": password}
		data, err := c.post("/api/auth/register", body)
		if err != nil {
			failure("Registration failed: %v\n", err)
			return
		}
		success("Registered.\n")
		printJSON(data)
	case "login":
		if len(os.Args) < 3 {
			fmt.Println("Usage: login <username>")
			return
		}
		password, err := readPassword()
		if err != nil {
			failure("Failed to read password: %v\n", err)
			return
		}
		body := map[string]string{"username": os.Args[2], "password": password}
		data, err := c.post("/api/auth/login", body)
		if err != nil {
			failure("Login failed: %v\n", err)
			return
		}
		var auth struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(data, &auth); err != nil {
			failure("Unexpected login response: %v\n", err)
			return
		}
		success("Logged in.\n")
		fmt.Printf("export LEDGER_TOKEN=%s\n", auth.Token)
	case "create":
		if len(os.Args) < 3 {
			fmt.Println("Usage: create <savings|current>")
			return
		}
		data, err := c.post("/api/accounts", map[string]string{"accountType": os.Args[2]})
		if err != nil {
			failure("Account creation failed: %v\n", err)
			return
		}
		success("Account created.\n")
		printJSON(data)
	case "deposit", "withdraw":
		if len(os.Args) < 4 {
			fmt.Printf("Usage: %s <account_id> <amount>\n", cmd)
			return
		}
		body := map[string]json.Number{
			"accountId": json.Number(os.Args[2]),
			"amount":    json.Number(os.Args[3]),
		}
		data, err := c.post("/api/transactions/"+cmd, body)
		if err != nil {
			failure("%s failed: %v\n", cmd, err)
			return
		}
		success("%s successful.\n", cmd)
		printJSON(data)
	case "balance":
		if len(os.Args) < 3 {
			fmt.Println("Usage: balance <account_id>")
			return
		}
		data, err := c.get("/api/accounts/" + os.Args[2] + "/balance")
		if err != nil {
			failure("Balance lookup failed: %v\n", err)
			return
		}
		fmt.Printf("Balance: %s\n", data)
	case "accounts":
		data, err := c.get("/api/accounts")
		if err != nil {
			failure("Listing accounts failed: %v\n", err)
			return
		}
		printJSON(data)
	default:
		failure("Unknown command: %s\n", cmd)
	}
}

type client struct {
	base  string
	token string
}

func (c *client) post(path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) get(path string) (json.RawMessage, error) {
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *client) do(req *http.Request) (json.RawMessage, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, raw)
	}
	if !env.Success {
		return nil, fmt.Errorf("%s (%d)", env.Message, resp.StatusCode)
	}
	return env.Data, nil
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(password), err
}

func printJSON(data json.RawMessage) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}
