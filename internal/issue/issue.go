// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InvalidSchemaId Id = iota + 1
	InvalidOptionId
	InvalidPropertyId
	PropertyFileErrorId
	ConfigLoadFailedId
	PortUnavailableId
	InvalidPortRangeId
	ExecutableNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue message, followed by its links, as terminal
// markdown. stylePath is passed to glamour ("dark", "light", "notty", or a
// JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	invalidSchemaIssue = &Issue{
		id: InvalidSchemaId,
		mdMsg: `
# Invalid launch configuration!

The launch configuration was rejected before any command line was built.

## Things you can try:
- Make sure the class name is a non-empty identifier, e.g. 'com.example.Main'
- Check that '--executable' names a program, not an empty string
- Run again with '--verbose' to see which setting was rejected`,
	}

	invalidOptionIssue = &Issue{
		id: InvalidOptionId,
		mdMsg: `
# Invalid JVM option!

An option token was empty once its leading '-' was removed.

## Things you can try:
- Pass options with or without a single leading dash: 'Xmx512m' and '-Xmx512m' are the same
- Do not pass a lone '-' or an empty string
- Quote '--options' values so the shell does not split them early`,
		extLinks: []HttpLink{"https://docs.oracle.com/en/java/javase/21/docs/specs/man/java.html"},
	}

	invalidPropertyIssue = &Issue{
		id: InvalidPropertyId,
		mdMsg: `
# Invalid system property!

A system property needs a non-empty name and a string, boolean, integer or port value.

## Things you can try:
- Write properties as 'name=value', e.g. '-D app.mode=dev'
- Use 'name=' for a property without a value; it is rendered as '-Dname'`,
	}

	propertyFileErrorIssue = &Issue{
		id: PropertyFileErrorId,
		mdMsg: `
# Failed to read property file!

The property file could not be parsed as TOML.

## Things you can try:
- Put explicit properties under '[properties]' and fallbacks under '[defaults]'
- Quote keys that contain dots, e.g. '"app.name" = "demo"'
- Only '[properties]', '[defaults]' and '[environment]' tables are accepted`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your jlaunch configuration file could not be loaded or did not match the schema.

## Things you can try:
- Run 'jlaunch config path' to see which file is used
- Run 'jlaunch config dump' for a commented example configuration
- Check the CUE syntax of the file`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	portUnavailableIssue = &Issue{
		id: PortUnavailableId,
		mdMsg: `
# No free JMX port!

Every port in the requested range is already in use on this host.

## Things you can try:
- Widen the range passed to '--jmx-port-range'
- Pick a fixed port with '--jmx-port'
- Stop the JVMs still holding ports in that range`,
	}

	invalidPortRangeIssue = &Issue{
		id: InvalidPortRangeId,
		mdMsg: `
# Invalid port range!

Port ranges are written as 'start-end' with 1 <= start <= end <= 65535.

## Things you can try:
- Use a range like '9000-9100'
- Use '--jmx-port' for a single port`,
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Java executable not found!

The configured executable could not be found in your PATH.

## Things you can try:
- Install a JDK or JRE and make sure 'java' is on your PATH
- Point '--executable' at the full path of the java binary
- Set 'executable' in your jlaunch configuration`,
	}

	issues = map[Id]*Issue{
		invalidSchemaIssue.Id():      invalidSchemaIssue,
		invalidOptionIssue.Id():      invalidOptionIssue,
		invalidPropertyIssue.Id():    invalidPropertyIssue,
		propertyFileErrorIssue.Id():  propertyFileErrorIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		portUnavailableIssue.Id():    portUnavailableIssue,
		invalidPortRangeIssue.Id():   invalidPortRangeIssue,
		executableNotFoundIssue.Id(): executableNotFoundIssue,
	}
)

func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
