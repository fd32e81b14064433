package domain

import "fmt"

// QuestionType identifies the kind of a schema node.
type QuestionType string

const (
	TypeFillBlank       QuestionType = "FillBlank"
	TypeTextarea        QuestionType = "Textarea"
	TypeMultipleBlank   QuestionType = "MultipleBlank"
	TypeSignature       QuestionType = "Signature"
	TypeScore           QuestionType = "Score"
	TypeRadio           QuestionType = "Radio"
	TypeCheckbox        QuestionType = "Checkbox"
	TypeSelect          QuestionType = "Select"
	TypeCascader        QuestionType = "Cascader"
	TypeUpload          QuestionType = "Upload"
	TypeMatrixAuto      QuestionType = "MatrixAuto"
	TypeMatrixRadio     QuestionType = "MatrixRadio"
	TypeMatrixCheckbox  QuestionType = "MatrixCheckbox"
	TypeMatrixFillBlank QuestionType = "MatrixFillBlank"
	TypeMatrixScore     QuestionType = "MatrixScore"
	TypeMatrixNps       QuestionType = "MatrixNps"
	TypeSurvey          QuestionType = "Survey"
	TypeQuestionSet     QuestionType = "QuestionSet"
	TypePagination      QuestionType = "Pagination"
	TypeRemark          QuestionType = "Remark"
	TypeSplitLine       QuestionType = "SplitLine"
	TypeOption          QuestionType = "Option"
	TypeUser            QuestionType = "User"
	TypeDept            QuestionType = "Dept"
	TypeNps             QuestionType = "Nps"
	TypeHorzBlank       QuestionType = "HorzBlank"
	TypeAddress         QuestionType = "Address"
)

type typeClass uint8

const (
	classData typeClass = 1 << iota
	classVoid
	classExam
)

// typeClasses is the single source of truth for the data, void and exam sets.
var typeClasses = map[QuestionType]typeClass{
	TypeFillBlank:       classData | classExam,
	TypeTextarea:        classData | classExam,
	TypeMultipleBlank:   classData | classExam,
	TypeSignature:       classData,
	TypeScore:           classData,
	TypeRadio:           classData | classExam,
	TypeCheckbox:        classData | classExam,
	TypeSelect:          classData | classExam,
	TypeCascader:        classData,
	TypeUpload:          classData,
	TypeMatrixAuto:      classData,
	TypeMatrixRadio:     classData,
	TypeMatrixCheckbox:  classData,
	TypeMatrixFillBlank: classData,
	TypeMatrixScore:     classData,
	TypeMatrixNps:       classData,
	TypeSurvey:          classVoid,
	TypeQuestionSet:     classVoid,
	TypePagination:      classVoid,
	TypeRemark:          classVoid,
	TypeSplitLine:       classVoid,
	TypeOption:          classVoid,
	TypeUser:            classData,
	TypeDept:            classData,
	TypeNps:             classData,
	TypeHorzBlank:       classData | classExam,
	TypeAddress:         classData,
}

// AllQuestionTypes returns every known question type in declaration order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		TypeFillBlank, TypeTextarea, TypeMultipleBlank, TypeSignature, TypeScore,
		TypeRadio, TypeCheckbox, TypeSelect, TypeCascader, TypeUpload,
		TypeMatrixAuto, TypeMatrixRadio, TypeMatrixCheckbox, TypeMatrixFillBlank,
		TypeMatrixScore, TypeMatrixNps, TypeSurvey, TypeQuestionSet, TypePagination,
		TypeRemark, TypeSplitLine, TypeOption, TypeUser, TypeDept, TypeNps,
		TypeHorzBlank, TypeAddress,
	}
}

// Valid reports whether t is a member of the closed enumeration.
func (t QuestionType) Valid() bool {
	_, ok := typeClasses[t]
	return ok
}

// IsDataType reports whether nodes of this type carry an answer.
func (t QuestionType) IsDataType() bool { return typeClasses[t]&classData != 0 }

// IsVoidType reports whether nodes of this type are structural or presentational only.
func (t QuestionType) IsVoidType() bool { return typeClasses[t]&classVoid != 0 }

// IsExamType reports whether nodes of this type support automatic scoring.
func (t QuestionType) IsExamType() bool { return typeClasses[t]&classExam != 0 }

// IsContainer reports whether the type groups child nodes.
func (t QuestionType) IsContainer() bool {
	return t == TypeSurvey || t == TypeQuestionSet || t == TypePagination
}

// IsMatrix reports whether answers are keyed by row.
func (t QuestionType) IsMatrix() bool {
	switch t {
	case TypeMatrixAuto, TypeMatrixRadio, TypeMatrixCheckbox, TypeMatrixFillBlank, TypeMatrixScore, TypeMatrixNps:
		return true
	}
	return false
}

// IsChoice reports whether answers are option values taken from the data source.
func (t QuestionType) IsChoice() bool {
	switch t {
	case TypeRadio, TypeCheckbox, TypeSelect, TypeCascader:
		return true
	}
	return false
}

// IsBlank reports whether answers are free text typed into one or more blanks.
func (t QuestionType) IsBlank() bool {
	switch t {
	case TypeFillBlank, TypeTextarea, TypeMultipleBlank, TypeHorzBlank:
		return true
	}
	return false
}

// IsNumeric reports whether the answer is a rating on a numeric scale.
func (t QuestionType) IsNumeric() bool {
	switch t {
	case TypeScore, TypeNps, TypeMatrixScore, TypeMatrixNps:
		return true
	}
	return false
}

// MultiValued reports whether a single answer may hold several values.
func (t QuestionType) MultiValued() bool {
	switch t {
	case TypeCheckbox, TypeMultipleBlank, TypeHorzBlank, TypeUpload, TypeCascader, TypeMatrixCheckbox, TypeAddress:
		return true
	}
	return false
}

// UnmarshalText rejects types outside the enumeration.
func (t *QuestionType) UnmarshalText(text []byte) error {
	v := QuestionType(text)
	if !v.Valid() {
		return fmt.Errorf("unknown question type %q", string(text))
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t QuestionType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
