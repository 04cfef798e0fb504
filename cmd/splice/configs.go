package main

import (
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool   `cli:"name=color desc='color output even when it is not a terminal'"`
	Dir   string `cli:"name=C desc='resolve target paths against dir instead of the plan directory'"`

	Main *cli.Command
}

type ApplyConfig struct {
	*MainConfig
	Env map[string]any

	DryRun  bool   `cli:"name=n aliases=dry-run desc='report what would change without writing'"`
	Diff    bool   `cli:"name=d aliases=diff desc='show a unified diff of each changed file'"`
	Inline  bool   `cli:"name=w aliases=inline desc='show each change within its line'"`
	Profile string `cli:"name=p aliases=profile desc='profile to patch the plans with'"`
	Quiet   bool   `cli:"name=q aliases=quiet desc='omit edits which are already present'"`

	Apply *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Env map[string]any

	Diff    bool   `cli:"name=d aliases=diff desc='show a unified diff of each pending change'"`
	Profile string `cli:"name=p aliases=profile desc='profile to patch the plans with'"`
	Strict  bool   `cli:"name=strict desc='also fail when a marker is not found'"`

	Check *cli.Command
}

type ListConfig struct {
	*MainConfig

	Profiles bool   `cli:"name=profiles desc='list the profiles next to each plan'"`
	Profile  string `cli:"name=p aliases=profile desc='profile to patch the plans with'"`

	List *cli.Command
}

type EditConfig struct {
	*MainConfig
	At       []string
	Unless   []string
	Requires []string

	Op       string `cli:"name=op desc='append, prepend, insert-after, insert-before, replace or delete'"`
	Name     string `cli:"name=name desc='name of the edit in the report'"`
	Last     bool   `cli:"name=last desc='anchor on the last occurrence of the first marker'"`
	Until    string `cli:"name=until desc='end the scope of replace and delete at this marker'"`
	Old      string `cli:"name=old desc='text to replace or delete'"`
	Text     string `cli:"name=text desc='text to insert or replace with'"`
	TextFile string `cli:"name=f desc='read the text from a file, - for stdin'"`
	Count    int    `cli:"name=count desc='number of occurrences to replace, negative for all'"`
	Line     bool   `cli:"name=line desc='insert the text as its own line'"`
	Fallback string `cli:"name=fallback desc='append or prepend when the anchor is missing'"`
	DryRun   bool   `cli:"name=n aliases=dry-run desc='report what would change without writing'"`
	Diff     bool   `cli:"name=d aliases=diff desc='show a unified diff of the change'"`

	Edit *cli.Command
}
