package session

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Marshal сериализует состояние в YAML
func Marshal(st *State) ([]byte, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации состояния")
	}
	return data, nil
}

// Unmarshal восстанавливает состояние из YAML. Отсутствующие поля получают
// значения по умолчанию.
func Unmarshal(data []byte) (*State, error) {
	st := DefaultState()
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, errors.Wrap(err, "ошибка разбора состояния")
	}
	if st.SongBlacklist == nil {
		st.SongBlacklist = make(Blacklist)
	}
	if _, err := LookupSort(st.SortSongs); err != nil {
		return nil, err
	}
	return st, nil
}

func expandHome(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(filePath, "~", home, 1), nil
}

// SaveSnapshot сохраняет состояние в файл
func SaveSnapshot(filePath string, st *State) error {
	path, err := expandHome(filePath)
	if err != nil {
		return err
	}

	data, err := Marshal(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "ошибка записи файла состояния")
	}
	return nil
}

// LoadSnapshot читает состояние из файла. Если файла нет или он пуст,
// возвращается состояние по умолчанию.
func LoadSnapshot(filePath string) (*State, error) {
	path, err := expandHome(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultState(), nil
		}
		return nil, errors.Wrap(err, "ошибка чтения файла состояния")
	}
	if len(data) == 0 {
		return DefaultState(), nil
	}
	return Unmarshal(data)
}
