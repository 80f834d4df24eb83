package loader

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// companionShell backs `use "shell"`: shell.run(cmd) runs cmd through the
// host shell and returns a Dict {stdout stderr exit_code}. Grounded on
// SPEC_FULL.md's "Shell/process companion modules" supplement (point 8),
// which calls for this as a second companion-module example distinct from
// json -- one that talks to the OS rather than just transcoding text.
func companionShell(myExport *value.Dict, ev core.Evaluator) (core.Value, error) {
	d := mergeCompanionExport(myExport)
	d.Set(value.String("run"), companionFn("shell.run", nativeShellRun))
	return d, nil
}

// companionProcess backs `use "process"`: process.exec(name, args...) runs
// name directly (no shell interpolation), and process.env(key) reads an
// environment variable.
func companionProcess(myExport *value.Dict, ev core.Evaluator) (core.Value, error) {
	d := mergeCompanionExport(myExport)
	d.Set(value.String("exec"), companionFn("process.exec", nativeProcessExec))
	d.Set(value.String("env"), companionFn("process.env", nativeProcessEnv))
	return d, nil
}

func mergeCompanionExport(myExport *value.Dict) *value.Dict {
	d := value.NewDict()
	if myExport != nil {
		keys, vals := myExport.Keys(), myExport.Values()
		for i, k := range keys {
			d.Set(k, vals[i])
		}
	}
	return d
}

func nativeShellRun(args *value.Args, ev core.Evaluator) (core.Value, error) {
	cmdStr, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "shell.run", "1", "0")
	}
	s, ok := cmdStr.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "shell.run", "String", cmdStr.Kind().String())
	}
	cmd := exec.Command("/bin/sh", "-c", string(s))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	exitCode := 0
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, verror.Type(verror.IDInvalidOperation, "shell.run", err.Error())
		}
	}
	result := value.NewDict()
	result.Set(value.String("stdout"), value.String(stdout.String()))
	result.Set(value.String("stderr"), value.String(stderr.String()))
	result.Set(value.String("exit_code"), value.Int(exitCode))
	return result, nil
}

func nativeProcessExec(args *value.Args, ev core.Evaluator) (core.Value, error) {
	name, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "process.exec", "1+", "0")
	}
	nameStr, ok := name.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "process.exec", "String", name.Kind().String())
	}
	positional := args.Positional()
	var argv []string
	for _, a := range positional[1:] {
		s, ok := a.(value.String)
		if !ok {
			return nil, verror.Type(verror.IDTypeMismatch, "process.exec argument", "String", a.Kind().String())
		}
		argv = append(argv, string(s))
	}
	cmd := exec.Command(string(nameStr), argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	exitCode := 0
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, verror.Type(verror.IDInvalidOperation, "process.exec", err.Error())
		}
	}
	result := value.NewDict()
	result.Set(value.String("stdout"), value.String(stdout.String()))
	result.Set(value.String("stderr"), value.String(stderr.String()))
	result.Set(value.String("exit_code"), value.Int(exitCode))
	return result, nil
}

func nativeProcessEnv(args *value.Args, ev core.Evaluator) (core.Value, error) {
	key, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "process.env", "1", "0")
	}
	s, ok := key.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "process.env", "String", key.Kind().String())
	}
	v, found := os.LookupEnv(string(s))
	if !found {
		return value.NullValue, nil
	}
	return value.String(v), nil
}
