package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
	"gopkg.in/yaml.v3"
)

// Render 把報告寫到 w。
type Render interface {
	Write(w io.Writer, v any) error
}

// Json渲染
type JsonRender struct{}

func (jr *JsonRender) Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLRender 輸出時把「只含 scalar 的 sequence / mapping」壓成單行 flow style，
// 每個欄位摘要一行，外層結構維持展開。
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	flowLeaves(&node, false)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(&node)
}

// flowLeaves 自底向上標記：sequence 的 scalar 元素列、以及 sequence 內的扁平 mapping。
func flowLeaves(n *yaml.Node, inSeq bool) {
	if n == nil {
		return
	}
	for _, c := range n.Content {
		flowLeaves(c, n.Kind == yaml.SequenceNode)
	}
	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) > 0 && allScalar(n.Content) {
			n.Style = yaml.FlowStyle
		}
	case yaml.MappingNode:
		if inSeq && allScalar(n.Content) {
			n.Style = yaml.FlowStyle
		}
	}
}

func allScalar(ns []*yaml.Node) bool {
	for _, c := range ns {
		if c == nil || c.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

// TableRender 輸出與 CLI 相同的文字表格；只支援本套件的報告型別。
type TableRender struct{}

func (tr *TableRender) Write(w io.Writer, v any) error {
	switch r := v.(type) {
	case *DatasetSummary:
		r.StdOut(w)
	case *SweepReport:
		r.writeTables(w)
	case []ColumnSummary:
		fmt.Fprintln(w, fmtSummaries("Summary", r))
	default:
		return errs.Warnf("table render does not support %T", v)
	}
	return nil
}

// RenderByName 依格式名稱取得 Render：json / yaml / table。
func RenderByName(name string) (Render, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return &JsonRender{}, nil
	case "yaml", "yml":
		return &YAMLRender{}, nil
	case "", "table", "text":
		return &TableRender{}, nil
	}
	return nil, errs.Warnf("unsupported report format: %q", name)
}
