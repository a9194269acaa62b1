package loader

import (
	"go/ast"
	"strings"

	"github.com/kolah/restdoc/internal/decl"
)

const directivePrefix = "//restdoc:"

// docInfo is a parsed doc comment.
//
//	//restdoc:<marker> [value]
//	//restdoc:param <param> <marker> [value]
//	@<Tag> <text>
//	@param <param> <text>
type docInfo struct {
	text         string
	first        string
	markers      decl.Markers
	tags         []decl.Tag
	params       map[string]string
	paramMarkers map[string]decl.Markers
}

func parseDoc(groups ...*ast.CommentGroup) docInfo {
	info := docInfo{
		params:       make(map[string]string),
		paramMarkers: make(map[string]decl.Markers),
	}

	var lines []string
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if rest, ok := strings.CutPrefix(c.Text, directivePrefix); ok {
				info.addDirective(rest)
			}
		}
		// Text drops directive lines already.
		for _, line := range strings.Split(cg.Text(), "\n") {
			if tag, ok := strings.CutPrefix(strings.TrimSpace(line), "@"); ok && tag != "" {
				info.addTag(tag)
				continue
			}
			if line == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
				continue
			}
			lines = append(lines, line)
		}
	}

	info.text = strings.TrimSpace(strings.Join(lines, "\n"))
	info.first = firstSentence(info.text)
	return info
}

func (d *docInfo) addDirective(rest string) {
	name, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
	name = strings.ToLower(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return
	}

	if name != "param" {
		d.markers = append(d.markers, decl.Marker{Name: name, Value: value})
		return
	}

	fields := strings.Fields(value)
	if len(fields) < 2 {
		return
	}
	d.paramMarkers[fields[0]] = append(d.paramMarkers[fields[0]], decl.Marker{
		Name:  strings.ToLower(fields[1]),
		Value: strings.Join(fields[2:], " "),
	})
}

func (d *docInfo) addTag(tag string) {
	name, text, _ := strings.Cut(tag, " ")
	text = strings.TrimSpace(text)
	d.tags = append(d.tags, decl.Tag{Name: name, Text: text})

	if name == "param" {
		param, comment, _ := strings.Cut(text, " ")
		d.params[param] = strings.TrimSpace(comment)
	}
}

// firstSentence returns the leading sentence of the first paragraph,
// including its period. It is always a prefix of text.
func firstSentence(text string) string {
	para, _, _ := strings.Cut(text, "\n\n")
	for i := 0; i < len(para); i++ {
		if para[i] != '.' {
			continue
		}
		if i+1 == len(para) || strings.ContainsRune(" \t\n", rune(para[i+1])) {
			return para[:i+1]
		}
	}
	return para
}

// tagMarkers turns every key of a struct tag into a marker.
func tagMarkers(tag string) decl.Markers {
	var markers decl.Markers
	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		i := strings.IndexByte(tag, ':')
		if i <= 0 || i+1 >= len(tag) || tag[i+1] != '"' || strings.ContainsRune(tag[:i], ' ') {
			break
		}
		key := tag[:i]
		tag = tag[i+1:]

		j := 1
		for j < len(tag) && tag[j] != '"' {
			if tag[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(tag) {
			break
		}
		value := strings.ReplaceAll(tag[1:j], `\"`, `"`)
		tag = tag[j+1:]

		markers = append(markers, decl.Marker{Name: key, Value: value})
	}
	return markers
}
