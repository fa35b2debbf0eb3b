package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskchat/internal/interpreter"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a natural-language command to the board",
		Long: `Send a natural-language command to the board. With a message argument
the command runs once and exits; without one it reads commands
interactively until EOF.`,
		Run: runChat,
	}
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	interp := interpreter.New(s, nil)

	if len(args) > 0 {
		res := interp.Process(cmd.Context(), strings.Join(args, " "))
		printResult(res)
		if !res.Success {
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	fmt.Println("taskchat: type a command, or \"help\". Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		printResult(interp.Process(cmd.Context(), line))
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		exitErr("read input", err)
	}
}

func printResult(res *interpreter.Result) {
	if formatFlag == "json" {
		b, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Println(res.Message)
}
