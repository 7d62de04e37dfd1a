package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/TaskKeeper/internal/client"
)

var (
	version   string
	buildDate string
)

// printItem renders one todo item for the shell.
func printItem(id int64, completed bool, title string, due *time.Time) {
	mark := " "
	if completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %d: %s", mark, id, title)
	if due != nil {
		line += " (due " + due.Format("2006-01-02") + ")"
	}
	fmt.Println(line)
}

// repl runs the interactive shell loop, accepting commands to manage tasks.
func repl(api *client.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("taskkeeper> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register <user> <email> <password>, login <user> <password>,")
			fmt.Println("  list, add <title...> [@YYYY-MM-DD], get <id>, done <id>, rm <id>, summary, exit")
		case "register":
			if len(args) != 4 {
				fmt.Println("Usage: register <user> <email> <password>")
				continue
			}
			res, err := api.Register(args[1], args[2], args[3])
			if err != nil {
				fmt.Println("register failed:", err)
				continue
			}
			fmt.Printf("Registered as %s, session valid until %s\n", res.Username, res.ExpiresAt.Format(time.RFC1123))
		case "login":
			if len(args) != 3 {
				fmt.Println("Usage: login <user> <password>")
				continue
			}
			res, err := api.Login(args[1], args[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s, session valid until %s\n", res.Username, res.ExpiresAt.Format(time.RFC1123))
		case "list":
			items, err := api.List()
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			if len(items) == 0 {
				fmt.Println("No tasks")
				continue
			}
			for _, item := range items {
				printItem(item.ID, item.Completed, item.Title, item.DueDate)
			}
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <title...> [@YYYY-MM-DD]")
				continue
			}
			words := args[1:]
			var due *time.Time
			last := words[len(words)-1]
			if strings.HasPrefix(last, "@") {
				d, err := time.ParseInLocation("2006-01-02", strings.TrimPrefix(last, "@"), time.UTC)
				if err != nil {
					fmt.Println("invalid due date:", last)
					continue
				}
				due = &d
				words = words[:len(words)-1]
			}
			item, err := api.Create(strings.Join(words, " "), due)
			if err != nil {
				fmt.Println("add failed:", err)
				continue
			}
			fmt.Printf("Added task %d\n", item.ID)
		case "get":
			id, ok := parseID(args, "get")
			if !ok {
				continue
			}
			item, err := api.Get(id)
			if err != nil {
				fmt.Println("get failed:", err)
				continue
			}
			printItem(item.ID, item.Completed, item.Title, item.DueDate)
		case "done":
			id, ok := parseID(args, "done")
			if !ok {
				continue
			}
			item, err := api.Toggle(id)
			if err != nil {
				fmt.Println("toggle failed:", err)
				continue
			}
			printItem(item.ID, item.Completed, item.Title, item.DueDate)
		case "rm":
			id, ok := parseID(args, "rm")
			if !ok {
				continue
			}
			if err := api.Delete(id); err != nil {
				fmt.Println("delete failed:", err)
				continue
			}
			fmt.Println("Task deleted")
		case "summary":
			s, err := api.Summary()
			if err != nil {
				fmt.Println("summary failed:", err)
				continue
			}
			fmt.Printf("Total: %d  Completed: %d  Pending: %d\n", s.Total, s.Completed, s.Pending)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// parseID extracts a numeric ID argument for single-item commands.
func parseID(args []string, cmd string) (int64, bool) {
	if len(args) != 2 {
		fmt.Printf("Usage: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", args[1])
		return 0, false
	}
	return id, true
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("TaskKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	repl(client.New(baseURL))
}
