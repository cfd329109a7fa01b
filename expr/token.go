package expr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrSyntax 表达式语法错误
var ErrSyntax = errors.New("expr: syntax error")

// 常量定义 - 用于词法分析的符号
const (
	tokenPlus   = "+"
	tokenMinus  = "-"
	tokenStar   = "*"
	tokenSlash  = "/"
	tokenCaret  = "^"
	tokenLParen = "("
	tokenRParen = ")"
	tokenComma  = ","
)

// tokenKind 词法单元类型
type tokenKind uint8

const (
	kindEOF tokenKind = iota
	kindNumber
	kindIdent
	kindSymbol
)

// token 词法单元
type token struct {
	Kind tokenKind
	Text string
	Col  int // 起始列号（从 1 开始）
}

// tokenize 将表达式切分为词法单元，跳过空白
func tokenize(r io.Reader) ([]token, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(SplitTokens)
	var tokens []token
	col := 1
	for scanner.Scan() {
		text := scanner.Text()
		start := col
		col += len([]rune(text))
		switch c := text[0]; {
		case isSpace(c):
			continue
		case isDigit(c) || c == '.':
			tokens = append(tokens, token{Kind: kindNumber, Text: text, Col: start})
		case isLetter(c):
			tokens = append(tokens, token{Kind: kindIdent, Text: text, Col: start})
		case isSymbol(c):
			tokens = append(tokens, token{Kind: kindSymbol, Text: text, Col: start})
		default:
			return nil, errorAt(start, "无法识别的字符 %q", text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取表达式时出错: %w", err)
	}
	return append(tokens, token{Kind: kindEOF, Col: col}), nil
}

// SplitTokens 分割标识符、数字与运算符
func SplitTokens(data []byte, atEOF bool) (advance int, tok []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	c := data[0]
	switch {
	case isSpace(c):
		i := 1
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		return i, data[:i], nil
	case isDigit(c) || c == '.':
		i, partial := scanNumber(data)
		if (partial || i == len(data)) && !atEOF {
			return 0, nil, nil // 数字可能被截断，读取更多
		}
		return i, data[:i], nil
	case isLetter(c):
		i := 1
		for i < len(data) && (isLetter(data[i]) || isDigit(data[i])) {
			i++
		}
		if i == len(data) && !atEOF {
			return 0, nil, nil
		}
		return i, data[:i], nil
	}
	// 单字节符号，多字节字符整体返回以便报错
	if c < 0x80 {
		return 1, data[:1], nil
	}
	i := 1
	for i < len(data) && data[i]&0xC0 == 0x80 {
		i++
	}
	return i, data[:i], nil
}

// scanNumber 扫描数字字面量，支持小数与科学计数法（1.5e-3）。
// partial 表示数据在指数标记之后截断，需读取更多才能判断
func scanNumber(data []byte) (n int, partial bool) {
	i := 0
	for i < len(data) && (isDigit(data[i]) || data[i] == '.') {
		i++
	}
	// 仅当 e 后跟数字（可带符号）时视为指数，否则 e 属于后续标识符
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if j == len(data) {
			return i, true
		}
		if isDigit(data[j]) {
			for j < len(data) && isDigit(data[j]) {
				j++
			}
			i = j
		}
	}
	return i, false
}

// errorAt 生成带列号的错误信息
func errorAt(col int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: 第 %d 列: %s", ErrSyntax, col, msg)
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// isLetter 检查是否是字母或下划线
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isSymbol(ch byte) bool {
	switch string(ch) {
	case tokenPlus, tokenMinus, tokenStar, tokenSlash, tokenCaret, tokenLParen, tokenRParen, tokenComma:
		return true
	}
	return false
}
