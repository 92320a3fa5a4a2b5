package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner runs an external program and returns what it wrote.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run implements Runner. A non-zero exit status is returned as an error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Transcriber converts audio files to text.
type Transcriber struct {
	runner  Runner
	ffmpeg  string
	whisper string
	tempDir string
}

// NewTranscriber creates a transcriber that invokes the executables named in
// config through runner.
func NewTranscriber(runner Runner, config *Config) *Transcriber {
	return &Transcriber{
		runner:  runner,
		ffmpeg:  config.FFmpeg,
		whisper: config.Whisper,
	}
}

// File transcribes input with the model at modelPath. With translate set,
// whisper translates the speech to English. Intermediate files live in a
// temporary directory that is removed before returning.
func (t *Transcriber) File(ctx context.Context, input, modelPath string, translate bool) (string, error) {
	if _, err := os.Stat(input); err != nil {
		return "", fmt.Errorf("file not found: %s", input)
	}

	workDir, err := os.MkdirTemp(t.tempDir, "whisper_")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	wav := filepath.Join(workDir, "audio.wav")
	outBase := filepath.Join(workDir, "transcript")

	// whisper.cpp expects 16 kHz mono 16-bit PCM.
	_, stderr, err := t.runner.Run(ctx, t.ffmpeg,
		"-y",
		"-i", input,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		wav,
		"-loglevel", "error",
	)
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %s: %w", detail(stderr), err)
	}

	args := []string{"-m", modelPath, "-f", wav, "-l", "auto"}
	if translate {
		args = append(args, "--translate")
	}
	args = append(args, "--output-txt", "-of", outBase)

	// The exit status is not trusted; the output file decides success.
	_, stderr, runErr := t.runner.Run(ctx, t.whisper, args...)

	transcript, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			msg := strings.TrimSpace(stderr)
			if msg == "" {
				msg = "output file not created"
			}
			if runErr != nil {
				return "", fmt.Errorf("transcription failed: %s: %w", msg, runErr)
			}
			return "", fmt.Errorf("transcription failed: %s", msg)
		}
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}

	return strings.TrimSpace(string(transcript)), nil
}

func detail(stderr string) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	return "no output"
}
