package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zintix-labs/bodylab/errs"
	"gopkg.in/yaml.v3"
)

// GetEngineSettingByYAML
// 會讀取 YAML 設定、補上預設值並執行基本檢查後回傳。
// 多寫或拼錯欄位一律報錯。
func GetEngineSettingByYAML(data []byte) (*EngineSetting, error) {
	es := &EngineSetting{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(es); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(err, "failed to unmarshal yaml")
	}
	if err := es.init(); err != nil {
		return nil, errs.Wrap(err, "engine setting initialized err")
	}
	return es, nil
}

// GetEngineSettingByJSON
// 會讀取 JSON 設定、補上預設值並執行基本檢查後回傳
func GetEngineSettingByJSON(data []byte) (*EngineSetting, error) {
	es := &EngineSetting{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(es); err != nil {
		return nil, errs.Wrap(err, "can not unmarshal json byte")
	}
	if err := es.init(); err != nil {
		return nil, errs.Wrap(err, "engine setting initialized err")
	}
	return es, nil
}
