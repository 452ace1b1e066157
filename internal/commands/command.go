package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDone Type = "done"
	TypeUndo Type = "undo"
	TypeShow Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Pet   string
	Title string
}

type DoneArgs struct {
	Target string
}

type ShowArgs struct {
	Subject string
	Pet     string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Done *DoneArgs
	Show *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeUndo:
		return Command{Type: TypeUndo, Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a pet name and a title"}
	}
	pet := strings.TrimSpace(args[0])
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if pet == "" || title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a pet name and a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Pet: pet, Title: title}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task id or prefix"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.ToLower(args[0])}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "tasks", "pets", "treatments":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("show supports tasks, pets, treatments; got %s", subject)}
	}
	pet := ""
	for _, arg := range args[1:] {
		if strings.HasPrefix(strings.ToLower(arg), "pet:") {
			pet = strings.TrimSpace(arg[len("pet:"):])
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject, Pet: pet}}, nil
}
