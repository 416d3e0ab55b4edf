package static

var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Диаграмма Вороного (инкрементальный)</title>
		<style>
			body {
				background-color: #1F1F1F; /* Темный фон для всей страницы */
				color: #d3d3d3; /* Светло-серый текст */
				font-family: Consolas, monospace;
				overflow: hidden; /* Запретить прокрутку */
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
			}

			#right-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575; /* Темная граница для правого контейнера */
				overflow-y: auto; /* Вертикальная прокрутка для логов */
				overflow-x: auto;
				background-color: #1e1e1e; /* Темный фон для контейнера логов */
			}

			#logs {
				white-space: pre-wrap; /* Сохраняем пробелы и переносим строки */
				word-wrap: break-word; /* Перенос длинных слов */
				color: #d3d3d3;
				font-family: Consolas, monospace; /* Моноширинный шрифт для логов */
			}

			#chart-container {
				width: 100%;
				height: 400px;
			}

			input[type="number"],
			input[type="submit"],
			select,
			textarea {
				background-color: #2b2b2b; /* Темный фон для полей ввода */
				color: #d3d3d3;
				border: 1px solid #444; /* Темная граница */
				padding: 5px;
				margin: 5px 0;
				border-radius: 4px;
			}

			textarea {
				width: 60%;
				font-family: Consolas, monospace;
			}

			label {
				color: #d3d3d3;
			}

			h1 {
				color: #d3d3d3;
			}

			input[type="submit"]:hover {
				background-color: #444; /* Немного светлее при наведении */
				cursor: pointer;
			}

			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444; /* Цвет ползунка */
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b; /* Цвет области прокрутки */
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>Параметры для диаграммы Вороного</h1>
                <form id="diagram-form" method="POST">
                    <label for="size">Сторона плоскости (квадрат):</label>
                    <input type="number" id="size" name="size" value="600" min="100" max="5000"><br><br>
                    <label for="vertices">Количество вершин (n):</label>
                    <input type="number" id="vertices" name="vertices" value="10" min="1" max="500"><br><br>
                    <label for="mode">Режим:</label>
                    <select id="mode" name="mode">
                        <option value="random">Случайные вершины</option>
                        <option value="grid">Сетка</option>
                        <option value="manual">Из текста</option>
                    </select><br><br>
                    <label for="points">Вершины текстом (первая строка - сторона плоскости, дальше "x y"):</label><br>
                    <textarea id="points" name="points" rows="5" placeholder="600&#10;100 100&#10;300 200"></textarea><br><br>
                    <input type="submit" value="Построить">
                </form>
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Логи</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>

        <script>
            document.getElementById('diagram-form').addEventListener('submit', function (e) {
                e.preventDefault();
                const formData = new FormData(this);
                const params = new URLSearchParams(formData).toString();

                // Отправка данных формы
                fetch('/', {
                    method: 'POST',
                    body: params,
                    headers: {
                        'Content-Type': 'application/x-www-form-urlencoded'
                    }
                })
                .then(response => {
                    if (!response.ok) {
                        throw new Error('Ошибка при отправке данных');
                    }
                    return response.text(); // Получаем HTML-ответ с обновленной диаграммой и логами
                })
                .then(html => {
                    document.open(); // Очищаем текущую страницу
                    document.write(html); // Записываем обновленный HTML
                    document.close(); // Закрываем поток
                })
                .catch(error => {
                    console.error('Ошибка:', error);
                });
            });
        </script>
    </body>
    </html>
    `
)
