package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const promptText = "Please enter a filename: "

// PromptSource спрашивает имя файла в In и читает этот файл.
type PromptSource struct {
	In   io.Reader
	Out  io.Writer
	path string
}

func NewPromptSource(in io.Reader, out io.Writer) *PromptSource {
	return &PromptSource{In: in, Out: out}
}

func (s *PromptSource) Name() string {
	if s.path == "" {
		return "prompt"
	}
	return s.path
}

func (s *PromptSource) Read(ctx context.Context) (string, error) {
	if _, err := fmt.Fprint(s.Out, promptText); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read filename: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", errors.New("no filename entered")
	}
	s.path = path

	return NewFileSource(path).Read(ctx)
}
